package config

import "strings"

// Lookup resolves a configuration key to its value.
// Implementations report ok=false for missing keys.
type Lookup interface {
	Get(key string) (string, bool)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(key string) (string, bool)

// Get implements Lookup.
func (f LookupFunc) Get(key string) (string, bool) {
	return f(key)
}

// Map is an in-memory Lookup.
type Map map[string]string

// Get implements Lookup. Blank values are reported as missing.
func (m Map) Get(key string) (string, bool) {
	return normalize(m[key])
}

// Chain returns a Lookup that queries sources in order and returns the first
// present value. Nil sources are skipped.
func Chain(sources ...Lookup) Lookup {
	clean := make([]Lookup, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			clean = append(clean, s)
		}
	}
	return LookupFunc(func(key string) (string, bool) {
		for _, s := range clean {
			if v, ok := s.Get(key); ok {
				if v, ok = normalize(v); ok {
					return v, true
				}
			}
		}
		return "", false
	})
}

// String returns the trimmed value for key, or an empty string when the key
// is missing or blank. A nil lookup behaves as an empty one.
func String(l Lookup, key string) string {
	if l == nil {
		return ""
	}
	v, ok := l.Get(key)
	if !ok {
		return ""
	}
	v, _ = normalize(v)
	return v
}

// Has reports whether key holds a non-blank value.
func Has(l Lookup, key string) bool {
	return String(l, key) != ""
}

// Bool interprets a configuration value as a boolean.
// Only "true", "1" and "yes" (any case, surrounding whitespace ignored)
// are true; everything else, including the empty string, is false.
func Bool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// List splits a comma separated value. All whitespace is removed first and
// empty items are dropped.
func List(v string) []string {
	v = strings.Join(strings.Fields(v), "")
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalize(v string) (string, bool) {
	v = strings.TrimSpace(v)
	return v, v != ""
}
