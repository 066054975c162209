package attachment

import (
	"maps"
	"slices"
)

// Credential keys.
const (
	CredAccessKeyID     = "accessKeyId"
	CredSecretAccessKey = "secretAccessKey"
	CredUsername        = "username"
	CredAPIKey          = "apiKey"
	CredServiceNet      = "serviceNet"
)

// DefaultProcessors is used when no processor provider is configured.
var DefaultProcessors = []string{"thumbnail"}

// Config is the resolved storage configuration of an attachment.
// It is built by Builder and read-only afterwards: accessors return copies.
type Config struct {
	credentials map[string]string
	extra       map[string]any
	styles      *Deferred[map[string]Style]
	processors  *Deferred[[]string]

	backend    Backend
	path       string
	url        string
	bucket     string
	container  string
	region     string
	endpoint   string
	hostAlias  string
	serviceNet bool
	pathStyle  bool

	whiny           bool
	whinyThumbnails bool
}

// Backend returns the storage kind.
func (c *Config) Backend() Backend { return c.backend }

// Path returns the storage path template.
func (c *Config) Path() string { return c.path }

// URL returns the URL template. Only filesystem storage has one by default.
func (c *Config) URL() string { return c.url }

// Bucket returns the S3 bucket.
func (c *Config) Bucket() string { return c.bucket }

// Container returns the Cloud Files container.
func (c *Config) Container() string { return c.container }

// BucketOrContainer returns the bucket or container of the backend, or an
// empty string for filesystem storage.
func (c *Config) BucketOrContainer() string {
	switch c.backend {
	case S3:
		return c.bucket
	case CloudFiles:
		return c.container
	default:
		return ""
	}
}

// Credentials returns a copy of the backend credentials.
func (c *Config) Credentials() map[string]string {
	return maps.Clone(c.credentials)
}

// Credential returns a single credential value.
func (c *Config) Credential(key string) string {
	return c.credentials[key]
}

// ServiceNet reports whether Cloud Files should use the internal network.
func (c *Config) ServiceNet() bool { return c.serviceNet }

// Region returns the S3 region.
func (c *Config) Region() string { return c.region }

// Endpoint returns the custom S3 endpoint.
func (c *Config) Endpoint() string { return c.endpoint }

// PathStyle reports whether S3 path-style addressing is enabled.
func (c *Config) PathStyle() bool { return c.pathStyle }

// HostAlias returns the public URL prefix for S3 objects.
func (c *Config) HostAlias() string { return c.hostAlias }

// Whiny reports whether processing errors are returned to the caller.
func (c *Config) Whiny() bool { return c.whiny }

// WhinyThumbnails reports whether thumbnail errors are returned to the caller.
func (c *Config) WhinyThumbnails() bool { return c.whinyThumbnails }

// Styles evaluates the style provider on first call and returns a copy.
func (c *Config) Styles() map[string]Style {
	if c.styles == nil {
		return map[string]Style{}
	}
	return maps.Clone(c.styles.Get())
}

// StylesEvaluated reports whether the style provider has run.
func (c *Config) StylesEvaluated() bool {
	return c.styles != nil && c.styles.Evaluated()
}

// Processors evaluates the processor provider on first call and returns a copy.
func (c *Config) Processors() []string {
	if c.processors == nil {
		return slices.Clone(DefaultProcessors)
	}
	return slices.Clone(c.processors.Get())
}

// ProcessorsEvaluated reports whether the processor provider has run.
func (c *Config) ProcessorsEvaluated() bool {
	return c.processors != nil && c.processors.Evaluated()
}

// Extra returns an override that has no typed field.
func (c *Config) Extra(key string) (any, bool) {
	v, ok := c.extra[key]
	return v, ok
}

// ExtraKeys returns the names of untyped overrides in sorted order.
func (c *Config) ExtraKeys() []string {
	return slices.Sorted(maps.Keys(c.extra))
}
