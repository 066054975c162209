package attachment

import (
	"log/slog"

	"github.com/dmitrymomot/assetkit/pkg/logger"
	"github.com/dmitrymomot/assetkit/pkg/storage"
)

type openOptions struct {
	logger  *slog.Logger
	baseURL string
}

// OpenOption configures OpenStorage.
type OpenOption func(*openOptions)

// WithOpenLogger sets the logger used while opening storage.
func WithOpenLogger(l *slog.Logger) OpenOption {
	return func(o *openOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBaseURL sets the URL prefix of filesystem storage. Defaults to "/".
func WithBaseURL(u string) OpenOption {
	return func(o *openOptions) {
		o.baseURL = u
	}
}

// OpenStorage creates the storage client of the configured backend.
//
// Filesystem keys are interpolated paths, absolute or relative to the working
// directory. S3 credentials are checked here, so a missing bucket or key
// returns storage.ErrInvalidConfig. Cloud Files returns ErrBackendNotSupported.
func (c *Config) OpenStorage(opts ...OpenOption) (storage.Storage, error) {
	o := &openOptions{logger: logger.NewNope(), baseURL: "/"}
	for _, opt := range opts {
		opt(o)
	}

	o.logger.Debug("opening asset storage",
		slog.String("backend", c.backend.String()),
		slog.String("bucket", c.BucketOrContainer()),
	)

	switch c.backend {
	case Filesystem:
		return storage.NewFileSystem(storage.FileSystemConfig{BaseURL: o.baseURL}), nil
	case S3:
		s3, err := storage.NewS3(storage.Config{
			Bucket:    c.bucket,
			AccessKey: c.credentials[CredAccessKeyID],
			SecretKey: c.credentials[CredSecretAccessKey],
			Region:    c.region,
			Endpoint:  c.endpoint,
			PublicURL: c.hostAlias,
			PathStyle: c.pathStyle,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, ErrBackendNotSupported
	}
}
