package processor

import "errors"

var (
	ErrInvalidGeometry   = errors.New("processor: invalid geometry")
	ErrUnknownProcessor  = errors.New("processor: unknown processor")
	ErrDecode            = errors.New("processor: failed to decode image")
	ErrEncode            = errors.New("processor: failed to encode image")
	ErrUnsupportedFormat = errors.New("processor: unsupported output format")
)
