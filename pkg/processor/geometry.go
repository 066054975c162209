package processor

import (
	"fmt"
	"image"
	"math"
	"regexp"
	"strconv"

	"github.com/disintegration/imaging"
)

// Mode is how a geometry maps the source onto the target box.
type Mode int

const (
	// Fit scales the image to fit inside the box, keeping aspect ratio.
	Fit Mode = iota
	// Shrink is Fit that never enlarges ("WxH>").
	Shrink
	// Enlarge is Fit that never shrinks ("WxH<").
	Enlarge
	// Crop fills the box and cuts the overflow around the center ("WxH#").
	Crop
	// Exact resizes to the box ignoring aspect ratio ("WxH!").
	Exact
)

var modeSuffix = map[Mode]string{
	Fit:     "",
	Shrink:  ">",
	Enlarge: "<",
	Crop:    "#",
	Exact:   "!",
}

// Geometry is a parsed ImageMagick style size such as "100x100>".
// A zero Width or Height means that side follows the aspect ratio.
type Geometry struct {
	Width  int
	Height int
	Mode   Mode
}

var geometryRegex = regexp.MustCompile(`^(\d*)(?:x(\d*))?([><#!]?)$`)

// ParseGeometry parses "WxH", "Wx", "xH" or "W" with an optional
// modifier: ">" shrink only, "<" enlarge only, "#" crop, "!" exact.
func ParseGeometry(s string) (Geometry, error) {
	m := geometryRegex.FindStringSubmatch(s)
	if m == nil {
		return Geometry{}, fmt.Errorf("%w: %q", ErrInvalidGeometry, s)
	}

	var g Geometry
	var err error
	if m[1] != "" {
		if g.Width, err = strconv.Atoi(m[1]); err != nil {
			return Geometry{}, fmt.Errorf("%w: %q", ErrInvalidGeometry, s)
		}
	}
	if m[2] != "" {
		if g.Height, err = strconv.Atoi(m[2]); err != nil {
			return Geometry{}, fmt.Errorf("%w: %q", ErrInvalidGeometry, s)
		}
	}
	if g.Width == 0 && g.Height == 0 {
		return Geometry{}, fmt.Errorf("%w: %q", ErrInvalidGeometry, s)
	}

	switch m[3] {
	case ">":
		g.Mode = Shrink
	case "<":
		g.Mode = Enlarge
	case "#":
		g.Mode = Crop
	case "!":
		g.Mode = Exact
	}
	if (g.Mode == Crop || g.Mode == Exact) && (g.Width == 0 || g.Height == 0) {
		return Geometry{}, fmt.Errorf("%w: %q needs both sides", ErrInvalidGeometry, s)
	}
	return g, nil
}

// String formats g in the syntax accepted by ParseGeometry.
func (g Geometry) String() string {
	var w, h string
	if g.Width > 0 {
		w = strconv.Itoa(g.Width)
	}
	if g.Height > 0 {
		h = strconv.Itoa(g.Height)
	}
	return w + "x" + h + modeSuffix[g.Mode]
}

// Apply resizes img according to g.
func (g Geometry) Apply(img image.Image) image.Image {
	switch g.Mode {
	case Crop:
		return imaging.Fill(img, g.Width, g.Height, imaging.Center, imaging.Lanczos)
	case Exact:
		return imaging.Resize(img, g.Width, g.Height, imaging.Lanczos)
	}

	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return img
	}

	scale := g.scale(sw, sh)
	switch {
	case g.Mode == Shrink && scale >= 1:
		return img
	case g.Mode == Enlarge && scale <= 1:
		return img
	}

	w := max(1, int(math.Round(float64(sw)*scale)))
	h := max(1, int(math.Round(float64(sh)*scale)))
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// scale is the factor that fits a sw x sh image into the box.
func (g Geometry) scale(sw, sh int) float64 {
	wr := float64(g.Width) / float64(sw)
	hr := float64(g.Height) / float64(sh)
	switch {
	case g.Width == 0:
		return hr
	case g.Height == 0:
		return wr
	default:
		return math.Min(wr, hr)
	}
}
