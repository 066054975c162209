package attachment

import "github.com/dmitrymomot/assetkit/pkg/assettype"

// PlaceholderDir holds the per-category placeholder images.
const PlaceholderDir = "/images/assets/"

// Classifier answers type membership for a content type.
type Classifier interface {
	Is(name, mimeType string) bool
}

// placeholders are checked in order; the first matching type picks the image.
var placeholders = []struct {
	typeName string
	kind     string
}{
	{assettype.PDF, "pdf"},
	{assettype.Movie, "movie"},
	{assettype.Video, "movie"},
	{assettype.SWF, "movie"},
	{assettype.Audio, "audio"},
	{assettype.Other, "doc"},
}

// ThumbnailURL returns the URL shown for an asset at size.
//
// The original size always maps to the stored file. Other sizes of non-image
// assets map to a static placeholder such as /images/assets/pdf_icon.png;
// images use the rendered variant. rendered builds the URL of a stored style.
func ThumbnailURL(c Classifier, contentType, size string, rendered func(style string) string) string {
	if size == "" || size == StyleOriginal {
		return rendered(StyleOriginal)
	}
	if kind, ok := PlaceholderKind(c, contentType); ok {
		return PlaceholderDir + kind + "_" + size + ".png"
	}
	return rendered(size)
}

// PlaceholderKind returns the placeholder category of contentType, or false
// when the asset has rendered variants of its own.
func PlaceholderKind(c Classifier, contentType string) (string, bool) {
	for _, p := range placeholders {
		if c.Is(p.typeName, contentType) {
			return p.kind, true
		}
	}
	return "", false
}
