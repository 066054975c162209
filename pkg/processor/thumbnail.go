package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/dmitrymomot/assetkit/pkg/attachment"
)

// DefaultJPEGQuality is used when encoding jpg styles.
const DefaultJPEGQuality = 90

// Thumbnail resizes images to a style geometry and encodes them in the
// style format, or in the source format when the style has none.
type Thumbnail struct {
	jpegQuality int
}

// ThumbnailOption configures a Thumbnail.
type ThumbnailOption func(*Thumbnail)

// WithJPEGQuality sets the JPEG quality, 1 to 100.
func WithJPEGQuality(q int) ThumbnailOption {
	return func(t *Thumbnail) {
		if q >= 1 && q <= 100 {
			t.jpegQuality = q
		}
	}
}

// NewThumbnail creates the thumbnail processor.
func NewThumbnail(opts ...ThumbnailOption) *Thumbnail {
	t := &Thumbnail{jpegQuality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Process implements Processor.
func (t *Thumbnail) Process(ctx context.Context, src io.Reader, style attachment.Style) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	geometry, err := ParseGeometry(style.Geometry)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	_, sourceFormat, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	name := style.Format
	if name == "" {
		name = sourceFormat
	}
	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, geometry.Apply(img), format, imaging.JPEGQuality(t.jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return &buf, nil
}

var _ Processor = (*Thumbnail)(nil)
