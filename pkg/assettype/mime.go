package assettype

import "strings"

// Normalize returns the bare, lower-cased MIME type without parameters.
// "Image/PNG; charset=binary" becomes "image/png".
func Normalize(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

func normalizeAll(mimes []string) []string {
	out := make([]string, 0, len(mimes))
	seen := make(map[string]struct{}, len(mimes))
	for _, m := range mimes {
		m = Normalize(m)
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, m := range a {
		set[m] = struct{}{}
	}
	for _, m := range b {
		if _, ok := set[m]; !ok {
			return false
		}
	}
	return true
}
