package assetkit

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/assetkit/pkg/asset"
	"github.com/dmitrymomot/assetkit/pkg/assettype"
	"github.com/dmitrymomot/assetkit/pkg/attachment"
	"github.com/dmitrymomot/assetkit/pkg/config"
	"github.com/dmitrymomot/assetkit/pkg/health"
	"github.com/dmitrymomot/assetkit/pkg/logger"
	"github.com/dmitrymomot/assetkit/pkg/processor"
	"github.com/dmitrymomot/assetkit/pkg/storage"
)

// Type aliases - public API
type (
	// Asset is an uploaded file record.
	Asset = asset.Asset

	// Attachment binds an Asset to its storage configuration.
	Attachment = asset.Attachment

	// Config is a resolved storage configuration.
	Config = attachment.Config

	// Overrides are per-attachment configuration values.
	Overrides = attachment.Overrides

	// Style is a named thumbnail definition.
	Style = attachment.Style

	// Lookup reads flat configuration keys.
	Lookup = config.Lookup

	// Registry holds the known asset types.
	Registry = assettype.Registry

	// Storage is the blob store behind attachments.
	Storage = storage.Storage
)

// Kit wires configuration, type classification, storage and thumbnail
// processing for one application.
type Kit struct {
	lookup      config.Lookup
	registry    *assettype.Registry
	styles      *attachment.StyleRegistry
	builder     *attachment.Builder
	processors  *processor.Registry
	logger      *slog.Logger
	config      *attachment.Config
	rules       []storage.ValidationRule
	storage     storage.Storage
	storageErr  error
	baseURL     string
	root        string
	concurrency int
	storageOnce sync.Once
}

// New creates a Kit from a configuration source.
// Invalid settings, such as an unknown storage backend or a malformed
// maximum asset size, fail here.
func New(lookup config.Lookup, opts ...Option) (*Kit, error) {
	if lookup == nil {
		lookup = config.Map{}
	}
	k := &Kit{
		lookup:      lookup,
		logger:      logger.NewNope(),
		root:        ".",
		concurrency: asset.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(k)
	}

	if k.registry == nil {
		k.registry = assettype.NewDefault(assettype.WithLogger(k.logger))
	}
	if k.styles == nil {
		k.styles = attachment.NewStyleRegistry(lookup)
	}
	if k.processors == nil {
		k.processors = processor.NewRegistry(processor.WithLogger(k.logger))
	}
	k.builder = attachment.NewBuilder(lookup,
		attachment.WithStyleRegistry(k.styles),
		attachment.WithLogger(k.logger),
	)

	cfg, err := k.builder.Configured(nil)
	if err != nil {
		return nil, err
	}
	k.config = cfg

	rules, err := attachment.ValidationRules(lookup)
	if err != nil {
		return nil, err
	}
	k.rules = rules

	return k, nil
}

// Registry returns the type registry.
func (k *Kit) Registry() *assettype.Registry { return k.registry }

// StyleRegistry returns the style registry shared by every configuration.
func (k *Kit) StyleRegistry() *attachment.StyleRegistry { return k.styles }

// Processors returns the processor registry.
func (k *Kit) Processors() *processor.Registry { return k.processors }

// Logger returns the logger.
func (k *Kit) Logger() *slog.Logger { return k.logger }

// Config returns the configured storage settings.
func (k *Kit) Config() *attachment.Config { return k.config }

// Build resolves settings for an explicit backend selector.
func (k *Kit) Build(selector string, overrides Overrides) (*attachment.Config, error) {
	return k.builder.Build(selector, overrides)
}

// ValidationRules returns the upload rules derived from configuration.
func (k *Kit) ValidationRules() []storage.ValidationRule {
	return k.rules
}

// Storage returns the storage client for the configured backend, opening
// it on first use.
func (k *Kit) Storage() (storage.Storage, error) {
	k.storageOnce.Do(func() {
		if k.storage != nil {
			return
		}
		opts := []attachment.OpenOption{attachment.WithOpenLogger(k.logger)}
		if k.baseURL != "" {
			opts = append(opts, attachment.WithBaseURL(k.baseURL))
		}
		k.storage, k.storageErr = k.config.OpenStorage(opts...)
	})
	return k.storage, k.storageErr
}

// Attach binds a to the configured storage. Overrides produce a dedicated
// configuration, and a storage client of their own when the backend or
// location differs. Storage is opened on first use, so a backend that
// cannot be opened fails Store and the other file operations, not Attach.
func (k *Kit) Attach(a *Asset, overrides Overrides, opts ...asset.Option) (*Attachment, error) {
	cfg := k.config
	base := []asset.Option{
		asset.WithRegistry(k.registry),
		asset.WithProcessors(k.processors),
		asset.WithLogger(k.logger),
		asset.WithRoot(k.root),
		asset.WithConcurrency(k.concurrency),
	}

	if len(overrides) > 0 {
		var err error
		if cfg, err = k.builder.Configured(overrides); err != nil {
			return nil, err
		}
	}
	if sameLocation(cfg, k.config) {
		base = append(base, asset.WithStorageFunc(k.Storage))
	}

	return asset.NewAttachment(a, cfg, append(base, opts...)...)
}

// Upload stores r as the original of a and renders its styles. The
// configured validation rules run before anything is written.
func (k *Kit) Upload(ctx context.Context, a *Asset, r io.Reader, size int64, overrides Overrides) (*Attachment, error) {
	at, err := k.Attach(a, overrides)
	if err != nil {
		return nil, err
	}
	if err := at.Store(ctx, r, size, storage.WithValidation(k.rules...)); err != nil {
		return nil, err
	}
	return at, nil
}

// Classify returns the type name of a MIME type.
func (k *Kit) Classify(mimeType string) string {
	return k.registry.Classify(mimeType)
}

// ThumbnailOptions returns the configured styles as choices for a picker.
func (k *Kit) ThumbnailOptions() []attachment.Option {
	return attachment.ThumbnailOptions(k.config.Styles())
}

// Checks returns readiness checks for the configured storage.
func (k *Kit) Checks() health.Checks {
	prefix := ""
	if k.config.Backend() == attachment.Filesystem {
		prefix = k.root
	}
	return health.Checks{
		"storage": func(ctx context.Context) error {
			s, err := k.Storage()
			if err != nil {
				return err
			}
			return health.StorageCheck(s, prefix)(ctx)
		},
	}
}

func sameLocation(a, b *attachment.Config) bool {
	return a.Backend() == b.Backend() &&
		a.BucketOrContainer() == b.BucketOrContainer() &&
		a.Region() == b.Region() &&
		a.Endpoint() == b.Endpoint() &&
		a.HostAlias() == b.HostAlias() &&
		a.PathStyle() == b.PathStyle() &&
		a.Credential(attachment.CredAccessKeyID) == b.Credential(attachment.CredAccessKeyID)
}
