package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/assetkit/pkg/assettype"
	"github.com/dmitrymomot/assetkit/pkg/attachment"
	"github.com/dmitrymomot/assetkit/pkg/logger"
	"github.com/dmitrymomot/assetkit/pkg/processor"
	"github.com/dmitrymomot/assetkit/pkg/storage"
)

// DefaultConcurrency bounds parallel style rendering.
const DefaultConcurrency = 4

// DefaultStyleFormat is the format of styles added by GenerateStyle.
const DefaultStyleFormat = "jpg"

// Attachment binds an Asset to its storage configuration.
type Attachment struct {
	asset       *Asset
	config      *attachment.Config
	registry    *assettype.Registry
	storage     storage.Storage
	openStorage func() (storage.Storage, error)
	storageErr  error
	processors  *processor.Registry
	logger      *slog.Logger
	generated   map[string]attachment.Style
	dimensions  map[string][2]int
	root        string
	concurrency int
	mu          sync.Mutex
	storageOnce sync.Once
}

// Option configures an Attachment.
type Option func(*Attachment)

// WithRegistry sets the type registry. Defaults to assettype.NewDefault().
func WithRegistry(r *assettype.Registry) Option {
	return func(a *Attachment) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithStorage sets the storage client. Defaults to Config.OpenStorage().
func WithStorage(s storage.Storage) Option {
	return func(a *Attachment) {
		if s != nil {
			a.storage = s
		}
	}
}

// WithStorageFunc sets how the storage client is obtained. It is called at
// most once, on the first operation that touches stored files.
func WithStorageFunc(fn func() (storage.Storage, error)) Option {
	return func(a *Attachment) {
		if fn != nil {
			a.openStorage = fn
		}
	}
}

// WithProcessors sets the processor registry.
func WithProcessors(r *processor.Registry) Option {
	return func(a *Attachment) {
		if r != nil {
			a.processors = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Attachment) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRoot sets the :root value of path templates. Defaults to ".".
func WithRoot(root string) Option {
	return func(a *Attachment) {
		if root != "" {
			a.root = root
		}
	}
}

// WithConcurrency bounds parallel style rendering.
func WithConcurrency(n int) Option {
	return func(a *Attachment) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewAttachment binds a to cfg. Without WithStorage the storage client is
// opened from cfg on first use, so paths, URLs and placeholders work even
// for backends that cannot be opened. Their errors surface from Store,
// Reprocess, GenerateStyle, Delete and SignedURL.
func NewAttachment(a *Asset, cfg *attachment.Config, opts ...Option) (*Attachment, error) {
	if a == nil || cfg == nil {
		return nil, ErrNoFile
	}
	at := &Attachment{
		asset:       a,
		config:      cfg,
		logger:      logger.NewNope(),
		generated:   make(map[string]attachment.Style),
		dimensions:  make(map[string][2]int),
		root:        ".",
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(at)
	}
	if at.registry == nil {
		at.registry = assettype.NewDefault(assettype.WithLogger(at.logger))
	}
	if at.processors == nil {
		at.processors = processor.NewRegistry(processor.WithLogger(at.logger))
	}
	if at.openStorage == nil {
		at.openStorage = func() (storage.Storage, error) {
			return cfg.OpenStorage(attachment.WithOpenLogger(at.logger))
		}
	}
	return at, nil
}

// Storage returns the storage client, opening it on first call. A failure
// is remembered and returned on every later call.
func (at *Attachment) Storage() (storage.Storage, error) {
	at.storageOnce.Do(func() {
		if at.storage != nil {
			return
		}
		at.storage, at.storageErr = at.openStorage()
	})
	return at.storage, at.storageErr
}

// Asset returns the bound record.
func (at *Attachment) Asset() *Asset {
	return at.asset
}

// IsImage reports whether the asset has rendered styles.
func (at *Attachment) IsImage() bool {
	return at.asset.Is(at.registry, assettype.Image)
}

// Styles returns the configured styles plus those added by GenerateStyle.
func (at *Attachment) Styles() map[string]attachment.Style {
	styles := at.config.Styles()
	at.mu.Lock()
	maps.Copy(styles, at.generated)
	at.mu.Unlock()
	return styles
}

// ChooseProcessors returns the processor names used to render styles.
func (at *Attachment) ChooseProcessors() []string {
	if names := at.config.Processors(); len(names) > 0 {
		return names
	}
	return slices.Clone(attachment.DefaultProcessors)
}

// Path returns the storage key of a style. An empty style is the original.
func (at *Attachment) Path(style string) string {
	return attachment.Interpolate(at.config.Path(), at.params(style))
}

// URL returns the public URL of a style.
func (at *Attachment) URL(style string) string {
	if tmpl := at.config.URL(); tmpl != "" {
		return attachment.Interpolate(tmpl, at.params(style))
	}
	key := at.Path(style)
	if s, err := at.Storage(); err == nil {
		if p, ok := s.(storage.PublicURLer); ok {
			return p.PublicURL(key)
		}
	}
	return key
}

// SignedURL asks the storage for a URL of a style, signed when the backend
// supports it.
func (at *Attachment) SignedURL(ctx context.Context, style string, opts ...storage.URLOption) (string, error) {
	s, err := at.Storage()
	if err != nil {
		return "", err
	}
	return s.URL(ctx, at.Path(style), opts...)
}

// Thumbnail returns the URL to show for size: the stored file for
// "original", a placeholder for non-image assets, the rendered style otherwise.
func (at *Attachment) Thumbnail(size string) string {
	return attachment.ThumbnailURL(at.registry, at.asset.ContentType, size, at.URL)
}

// Dimensions returns width and height of a stored style. Results are
// memoized per size. Non-image assets and unreadable files give (0, 0).
func (at *Attachment) Dimensions(ctx context.Context, size string) (int, int) {
	if size == "" {
		size = attachment.StyleOriginal
	}
	if !at.IsImage() {
		return 0, 0
	}

	at.mu.Lock()
	d, ok := at.dimensions[size]
	at.mu.Unlock()
	if ok {
		return d[0], d[1]
	}

	w, h := at.readDimensions(ctx, size)
	at.mu.Lock()
	at.dimensions[size] = [2]int{w, h}
	at.mu.Unlock()
	return w, h
}

// Width returns the width of a stored style, or 0 when unknown.
func (at *Attachment) Width(ctx context.Context, size string) int {
	w, _ := at.Dimensions(ctx, size)
	return w
}

// Height returns the height of a stored style, or 0 when unknown.
func (at *Attachment) Height(ctx context.Context, size string) int {
	_, h := at.Dimensions(ctx, size)
	return h
}

func (at *Attachment) readDimensions(ctx context.Context, size string) (int, int) {
	s, err := at.Storage()
	if err != nil {
		return 0, 0
	}
	rc, err := s.Get(ctx, at.Path(size))
	if err != nil {
		at.logger.DebugContext(ctx, "dimensions unavailable",
			slog.String("style", size),
			slog.String("error", err.Error()),
		)
		return 0, 0
	}
	defer rc.Close()
	return processor.Dimensions(rc)
}

// Store uploads the original file and renders all styles. size is used for
// validation; when it is not positive the read length is used.
// The detected content type and stored size are written back to the asset.
func (at *Attachment) Store(ctx context.Context, r io.Reader, size int64, opts ...storage.Option) error {
	if r == nil {
		return ErrNoFile
	}
	s, err := at.Storage()
	if err != nil {
		return err
	}
	ctx = logger.WithAssetID(ctx, at.asset.ID.String())

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadUpload, err)
	}
	if size <= 0 {
		size = int64(len(data))
	}

	putOpts := make([]storage.Option, 0, len(opts)+2)
	putOpts = append(putOpts, storage.WithKey(at.Path(attachment.StyleOriginal)))
	if at.asset.ContentType != "" {
		putOpts = append(putOpts, storage.WithContentType(at.asset.ContentType))
	}
	putOpts = append(putOpts, opts...)

	info, err := s.Put(ctx, bytes.NewReader(data), size, putOpts...)
	if err != nil {
		return err
	}
	at.asset.ContentType = info.ContentType
	at.asset.FileSize = int64(len(data))
	at.asset.AssignTitle()

	at.mu.Lock()
	clear(at.dimensions)
	at.mu.Unlock()

	at.logger.InfoContext(ctx, "asset stored",
		slog.String("key", info.Key),
		slog.String("content_type", info.ContentType),
		slog.Int64("size", at.asset.FileSize),
	)
	return at.render(ctx, data, at.Styles(), at.config.WhinyThumbnails())
}

// Reprocess renders every style again from the stored original.
// Non-image assets have no styles and return nil.
func (at *Attachment) Reprocess(ctx context.Context) error {
	if !at.IsImage() {
		return nil
	}
	ctx = logger.WithAssetID(ctx, at.asset.ID.String())

	data, err := at.original(ctx)
	if err != nil {
		return err
	}
	at.mu.Lock()
	clear(at.dimensions)
	at.mu.Unlock()
	return at.render(ctx, data, at.Styles(), at.config.WhinyThumbnails())
}

// GenerateStyle adds a style and renders it unless a file for it is already
// stored. An empty format means jpg. Rendering errors are always returned.
func (at *Attachment) GenerateStyle(ctx context.Context, name, geometry, format string) error {
	if format == "" {
		format = DefaultStyleFormat
	}
	style := attachment.Style{Name: name, Geometry: geometry, Format: format}

	at.mu.Lock()
	at.generated[name] = style
	at.mu.Unlock()

	s, err := at.Storage()
	if err != nil {
		return err
	}
	exists, err := s.Exists(ctx, at.Path(name))
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	ctx = logger.WithAssetID(ctx, at.asset.ID.String())
	data, err := at.original(ctx)
	if err != nil {
		return err
	}
	return at.render(ctx, data, map[string]attachment.Style{name: style}, true)
}

// Delete removes the original and every style. Missing files are ignored.
func (at *Attachment) Delete(ctx context.Context) error {
	s, err := at.Storage()
	if err != nil {
		return err
	}
	keys := []string{at.Path(attachment.StyleOriginal)}
	for _, name := range attachment.ThumbnailNames(at.Styles()) {
		keys = append(keys, at.Path(name))
	}

	var errs []error
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (at *Attachment) original(ctx context.Context) ([]byte, error) {
	s, err := at.Storage()
	if err != nil {
		return nil, err
	}
	rc, err := s.Get(ctx, at.Path(attachment.StyleOriginal))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadUpload, err)
	}
	return data, nil
}

// render processes styles concurrently. Failures are logged and skipped
// unless whiny is set.
func (at *Attachment) render(ctx context.Context, data []byte, styles map[string]attachment.Style, whiny bool) error {
	if !at.IsImage() || len(styles) == 0 {
		return nil
	}

	pipeline, err := at.processors.Chain(at.ChooseProcessors()...)
	if err != nil {
		if whiny {
			return err
		}
		at.logger.WarnContext(ctx, "style processing skipped", slog.String("error", err.Error()))
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(at.concurrency)
	for _, name := range attachment.ThumbnailNames(styles) {
		style := styles[name]
		if style.Name == "" {
			style.Name = name
		}
		g.Go(func() error {
			err := at.renderStyle(gctx, pipeline, data, style)
			if err == nil {
				return nil
			}
			if whiny {
				return fmt.Errorf("%w %q: %w", ErrProcessStyle, style.Name, err)
			}
			at.logger.WarnContext(gctx, "style processing failed",
				slog.String("style", style.Name),
				slog.String("error", err.Error()),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		at.logger.ErrorContext(ctx, "style processing failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (at *Attachment) renderStyle(ctx context.Context, p processor.Processor, data []byte, style attachment.Style) error {
	out, err := p.Process(ctx, bytes.NewReader(data), style)
	if err != nil {
		return err
	}
	rendered, err := io.ReadAll(out)
	if err != nil {
		return err
	}
	s, err := at.Storage()
	if err != nil {
		return err
	}
	_, err = s.Put(ctx, bytes.NewReader(rendered), int64(len(rendered)),
		storage.WithKey(at.Path(style.Name)),
	)
	return err
}

func (at *Attachment) params(style string) attachment.Params {
	if style == "" {
		style = attachment.StyleOriginal
	}
	ext := at.asset.Extension()
	if style != attachment.StyleOriginal {
		if s, ok := at.Styles()[style]; ok && s.Format != "" {
			ext = s.Format
		}
	}
	return attachment.Params{
		Root:      at.root,
		Class:     attachment.DefaultClass,
		ID:        at.asset.ID.String(),
		Basename:  at.asset.Basename(),
		Extension: ext,
		Style:     style,
	}
}
