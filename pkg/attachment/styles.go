package attachment

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/assetkit/pkg/config"
)

// Style names with fixed meaning.
const (
	StyleOriginal  = "original"
	StyleIcon      = "icon"
	StyleThumbnail = "thumbnail"
)

// OriginalLabel is the option label of the uploaded file itself.
const OriginalLabel = "Original (as uploaded)"

// Style is a named rendition of an image.
type Style struct {
	Name     string
	Geometry string
	// Format is the output format. Empty keeps the source format.
	Format string
}

// BuiltinStyles returns the styles every configuration has.
func BuiltinStyles() map[string]Style {
	return map[string]Style{
		StyleIcon:      {Name: StyleIcon, Geometry: "42x42#", Format: "png"},
		StyleThumbnail: {Name: StyleThumbnail, Geometry: "100x100>", Format: "png"},
	}
}

// ResolveStyles merges assets.additional_thumbnails with the built-in styles.
// Built-ins win on name collision.
func ResolveStyles(lookup config.Lookup) map[string]Style {
	styles := additionalStyles(config.String(lookup, config.KeyAdditionalThumbnails))
	maps.Copy(styles, BuiltinStyles())
	return styles
}

// additionalStyles parses "name=geometry,name=geometry". Whitespace is
// ignored; entries without a name or a geometry are skipped.
func additionalStyles(v string) map[string]Style {
	styles := make(map[string]Style)
	for _, entry := range config.List(v) {
		name, geometry, ok := strings.Cut(entry, "=")
		if !ok || name == "" || geometry == "" {
			continue
		}
		styles[name] = Style{Name: name, Geometry: geometry}
	}
	return styles
}

// StyleRegistry collects styles added by extensions on top of the configured
// ones. Definitions is evaluated lazily by Config, so additions made after
// Build but before first use are visible.
type StyleRegistry struct {
	lookup    config.Lookup
	added     map[string]Style
	extenders []func(map[string]Style)
	mu        sync.RWMutex
}

// NewStyleRegistry creates a registry reading configured styles from lookup.
func NewStyleRegistry(lookup config.Lookup) *StyleRegistry {
	return &StyleRegistry{
		lookup: lookup,
		added:  make(map[string]Style),
	}
}

// Add registers a style. Built-in names cannot be replaced.
func (r *StyleRegistry) Add(name, geometry, format string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added[name] = Style{Name: name, Geometry: geometry, Format: format}
}

// Extend registers a function that may add, change or remove styles.
// Extenders run in registration order, before built-ins are applied.
func (r *StyleRegistry) Extend(fn func(styles map[string]Style)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extenders = append(r.extenders, fn)
}

// Definitions returns configured, added and extended styles with the
// built-ins applied last.
func (r *StyleRegistry) Definitions() map[string]Style {
	r.mu.RLock()
	added := maps.Clone(r.added)
	extenders := slices.Clone(r.extenders)
	r.mu.RUnlock()

	styles := additionalStyles(config.String(r.lookup, config.KeyAdditionalThumbnails))
	maps.Copy(styles, added)
	// Extenders may call Add or Extend; the lock is not held here.
	for _, fn := range extenders {
		fn(styles)
	}
	maps.Copy(styles, BuiltinStyles())
	return styles
}

// Option is a select box entry.
type Option struct {
	Label string
	Value string
}

// ThumbnailOptions describes styles for a select box, sorted by name, with
// the original upload first.
func ThumbnailOptions(styles map[string]Style) []Option {
	opts := make([]Option, 0, len(styles)+1)
	opts = append(opts, Option{Label: OriginalLabel, Value: StyleOriginal})
	for _, name := range ThumbnailNames(styles) {
		opts = append(opts, Option{Label: styles[name].describe(name), Value: name})
	}
	return opts
}

// ThumbnailNames returns the style names in sorted order.
func ThumbnailNames(styles map[string]Style) []string {
	return slices.Sorted(maps.Keys(styles))
}

func (s Style) describe(name string) string {
	label := name + ": " + s.Geometry
	if s.Format != "" {
		label += " as " + s.Format
	}
	return label
}
