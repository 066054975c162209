package storage

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// resolveKey returns the explicit key, cleaned, or generates one from the
// prefix and content type as {prefix}/{uuid}{ext}.
func resolveKey(o *putOptions, contentType string) (string, error) {
	if o.key != "" {
		return cleanKey(o.key)
	}

	ext := ExtFromMIME(contentType)
	if ext == "" {
		ext = ".bin"
	}
	name := uuid.NewString() + ext
	if o.prefix == "" {
		return name, nil
	}
	return sanitizePathSegment(o.prefix) + "/" + name, nil
}

// cleanKey normalizes a key and rejects keys escaping the storage root.
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", ErrInvalidKey
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+key), "/")
	if cleaned == "" {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// pathSegmentRegex matches characters that are not safe for path segments.
var pathSegmentRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizePathSegment removes potentially dangerous characters from a path segment.
func sanitizePathSegment(segment string) string {
	segment = strings.Trim(segment, " /\\")
	segment = strings.ReplaceAll(segment, "..", "")
	segment = pathSegmentRegex.ReplaceAllString(segment, "_")
	return url.PathEscape(segment)
}
