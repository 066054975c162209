// Package sanitizer cleans user supplied asset metadata.
//
// Titles become one line of plain text. Captions keep a few inline tags
// (p, br, strong, b, em, i, code and links, which get rel="nofollow").
package sanitizer
