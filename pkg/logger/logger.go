package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor pulls a log attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// Option configures New.
type Option func(*options)

type options struct {
	out        io.Writer
	extractors []ContextExtractor
	level      slog.Level
}

// WithLevel sets the minimum level. Defaults to Info.
func WithLevel(l slog.Level) Option {
	return func(o *options) {
		o.level = l
	}
}

// WithOutput sets the destination. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithExtractors adds context extractors applied on every record.
func WithExtractors(ex ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, ex...)
	}
}

// New creates a JSON logger. The asset ID extractor is always installed.
func New(opts ...Option) *slog.Logger {
	o := &options{out: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}
	h := slog.NewJSONHandler(o.out, &slog.HandlerOptions{Level: o.level})
	return slog.New(newContextHandler(h, append([]ContextExtractor{AssetIDExtractor}, o.extractors...)...))
}

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type assetIDKey struct{}

// WithAssetID stores an asset ID in ctx for AssetIDExtractor.
func WithAssetID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, assetIDKey{}, id)
}

// AssetIDExtractor adds "asset_id" when the context carries one.
func AssetIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(assetIDKey{}).(string); ok && id != "" {
		return slog.String("asset_id", id), true
	}
	return slog.Attr{}, false
}
