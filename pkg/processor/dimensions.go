package processor

import (
	"image"
	"io"
)

// Dimensions returns the width and height of an encoded image by reading its
// header. Any failure yields (0, 0), which callers treat as unknown size.
func Dimensions(r io.Reader) (width, height int) {
	if r == nil {
		return 0, 0
	}
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
