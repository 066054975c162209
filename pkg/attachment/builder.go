package attachment

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/assetkit/pkg/config"
	"github.com/dmitrymomot/assetkit/pkg/logger"
)

// Default templates.
const (
	DefaultFilesystemPath = ":root/public/:class/:id/:basename:no_original_style.:extension"
	DefaultFilesystemURL  = "/:class/:id/:basename:no_original_style.:extension"
	DefaultRemotePath     = ":class/:id/:basename:no_original_style.:extension"
)

// Override keys.
const (
	OverrideStorage         = "storage"
	OverridePath            = "path"
	OverrideURL             = "url"
	OverrideBucket          = "bucket"
	OverrideContainer       = "container"
	OverrideCredentials     = "credentials"
	OverrideRegion          = "region"
	OverrideEndpoint        = "endpoint"
	OverridePathStyle       = "path_style"
	OverrideHostAlias       = "host_alias"
	OverrideWhiny           = "whiny"
	OverrideWhinyThumbnails = "whiny_thumbnails"
	OverrideStyles          = "styles"
	OverrideProcessors      = "processors"
)

// Overrides replace computed values by key. Keys without a typed field are
// kept and exposed through Config.Extra.
type Overrides map[string]any

// Builder assembles Configs from a configuration lookup.
// It performs no I/O and does not validate credentials.
type Builder struct {
	lookup     config.Lookup
	styles     func() map[string]Style
	processors func() []string
	logger     *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithStyleRegistry makes built configs read styles from r on first use.
func WithStyleRegistry(r *StyleRegistry) BuilderOption {
	return func(b *Builder) {
		if r != nil {
			b.styles = r.Definitions
		}
	}
}

// WithStyles sets the style provider.
func WithStyles(fn func() map[string]Style) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.styles = fn
		}
	}
}

// WithProcessors sets the processor provider. Defaults to DefaultProcessors.
func WithProcessors(fn func() []string) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.processors = fn
		}
	}
}

// WithLogger sets the builder logger.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder. Styles default to ResolveStyles(lookup).
func NewBuilder(lookup config.Lookup, opts ...BuilderOption) *Builder {
	if lookup == nil {
		lookup = config.Map{}
	}
	b := &Builder{
		lookup: lookup,
		logger: logger.NewNope(),
	}
	b.styles = func() map[string]Style { return ResolveStyles(b.lookup) }
	b.processors = func() []string { return slices.Clone(DefaultProcessors) }
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles the config selected by assets.storage.
func Build(lookup config.Lookup, overrides Overrides) (*Config, error) {
	b := NewBuilder(lookup)
	return b.Build(config.String(b.lookup, config.KeyStorage), overrides)
}

// Configured assembles the config selected by assets.storage.
func (b *Builder) Configured(overrides Overrides) (*Config, error) {
	return b.Build(config.String(b.lookup, config.KeyStorage), overrides)
}

// Build assembles the config for selector and applies overrides on top.
// An unknown selector returns *UnknownBackendError.
func (b *Builder) Build(selector string, overrides Overrides) (*Config, error) {
	backend, err := ParseBackend(selector)
	if err != nil {
		return nil, err
	}
	if v, ok := overrides[OverrideStorage]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, invalidOverride(OverrideStorage, v)
		}
		if backend, err = ParseBackend(s); err != nil {
			return nil, err
		}
	}

	c := b.defaults(backend)
	if err := c.apply(overrides); err != nil {
		return nil, err
	}

	b.logger.Debug("attachment config built",
		slog.String("backend", c.backend.String()),
		slog.String("path", c.path),
	)
	return c, nil
}

func (b *Builder) defaults(backend Backend) *Config {
	whiny := config.Bool(config.String(b.lookup, config.KeyWhinyThumbnails))
	c := &Config{
		backend:         backend,
		credentials:     map[string]string{},
		extra:           map[string]any{},
		styles:          Defer(b.styles),
		processors:      Defer(b.processors),
		whiny:           whiny,
		whinyThumbnails: whiny,
	}

	switch backend {
	case S3:
		c.path = b.stringOr(config.KeyPath, DefaultRemotePath)
		c.url = config.String(b.lookup, config.KeyURL)
		c.bucket = config.String(b.lookup, config.KeyS3Bucket)
		c.region = config.String(b.lookup, config.KeyS3Region)
		c.endpoint = config.String(b.lookup, config.KeyS3Endpoint)
		c.pathStyle = config.Bool(config.String(b.lookup, config.KeyS3PathStyle))
		c.hostAlias = config.String(b.lookup, config.KeyS3HostAlias)
		c.credentials[CredAccessKeyID] = config.String(b.lookup, config.KeyS3Key)
		c.credentials[CredSecretAccessKey] = config.String(b.lookup, config.KeyS3Secret)
	case CloudFiles:
		c.path = b.stringOr(config.KeyPath, DefaultRemotePath)
		c.url = config.String(b.lookup, config.KeyURL)
		c.container = config.String(b.lookup, config.KeyCloudFilesContainer)
		c.serviceNet = config.Bool(config.String(b.lookup, config.KeyCloudFilesServiceNet))
		c.credentials[CredUsername] = config.String(b.lookup, config.KeyCloudFilesUsername)
		c.credentials[CredAPIKey] = config.String(b.lookup, config.KeyCloudFilesAPIKey)
		c.credentials[CredServiceNet] = fmt.Sprint(c.serviceNet)
	default:
		c.path = b.stringOr(config.KeyPath, DefaultFilesystemPath)
		c.url = b.stringOr(config.KeyURL, DefaultFilesystemURL)
	}
	return c
}

func (b *Builder) stringOr(key, fallback string) string {
	if v := config.String(b.lookup, key); v != "" {
		return v
	}
	return fallback
}

// apply overlays overrides. Every key wins over the computed default.
func (c *Config) apply(overrides Overrides) error {
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		v := overrides[key]
		var err error
		switch key {
		case OverrideStorage:
			// Resolved before defaults.
		case OverridePath:
			c.path, err = stringValue(key, v)
		case OverrideURL:
			c.url, err = stringValue(key, v)
		case OverrideBucket:
			c.bucket, err = stringValue(key, v)
		case OverrideContainer:
			c.container, err = stringValue(key, v)
		case OverrideRegion:
			c.region, err = stringValue(key, v)
		case OverrideEndpoint:
			c.endpoint, err = stringValue(key, v)
		case OverrideHostAlias:
			c.hostAlias, err = stringValue(key, v)
		case OverridePathStyle:
			c.pathStyle, err = boolValue(key, v)
		case OverrideWhiny:
			c.whiny, err = boolValue(key, v)
		case OverrideWhinyThumbnails:
			c.whinyThumbnails, err = boolValue(key, v)
		case OverrideCredentials:
			err = c.applyCredentials(v)
		case OverrideStyles:
			c.styles, err = stylesValue(v)
		case OverrideProcessors:
			c.processors, err = processorsValue(v)
		default:
			c.extra[key] = v
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) applyCredentials(v any) error {
	creds := map[string]string{}
	switch m := v.(type) {
	case map[string]string:
		for k, val := range m {
			creds[k] = val
		}
	case map[string]any:
		for k, val := range m {
			creds[k] = fmt.Sprint(val)
		}
	default:
		return invalidOverride(OverrideCredentials, v)
	}
	c.credentials = creds
	if sn, ok := creds[CredServiceNet]; ok {
		c.serviceNet = config.Bool(sn)
	}
	return nil
}

func stringValue(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalidOverride(key, v)
	}
	return s, nil
}

func boolValue(key string, v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return config.Bool(b), nil
	default:
		return false, invalidOverride(key, v)
	}
}

func stylesValue(v any) (*Deferred[map[string]Style], error) {
	switch s := v.(type) {
	case map[string]Style:
		return Ready(s), nil
	case func() map[string]Style:
		return Defer(s), nil
	case *StyleRegistry:
		return Defer(s.Definitions), nil
	default:
		return nil, invalidOverride(OverrideStyles, v)
	}
}

func processorsValue(v any) (*Deferred[[]string], error) {
	switch p := v.(type) {
	case []string:
		return Ready(slices.Clone(p)), nil
	case func() []string:
		return Defer(p), nil
	default:
		return nil, invalidOverride(OverrideProcessors, v)
	}
}

func invalidOverride(key string, v any) error {
	return fmt.Errorf("%w: %s has type %T", ErrInvalidOverride, key, v)
}
