package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// captionElements are the inline tags a caption keeps.
var captionElements = []string{"p", "br", "strong", "b", "em", "i", "code", "a"}

var (
	textPolicy    = sync.OnceValue(bluemonday.StrictPolicy)
	captionPolicy = sync.OnceValue(func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowElements(captionElements...)
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		return p
	})
)

// Text drops all markup. Entities are decoded, so "a & b" stays "a & b".
func Text(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(textPolicy().Sanitize(s))
}

// Title is Text collapsed to a single line.
func Title(s string) string {
	return strings.Join(strings.Fields(Text(s)), " ")
}

// Caption keeps inline formatting and nofollow links. Scripts, event
// handlers and javascript: URLs are removed.
func Caption(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.TrimSpace(captionPolicy().Sanitize(s))
}
