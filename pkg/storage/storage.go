package storage

import (
	"context"
	"io"
)

// Storage is a flat key/value blob store for asset variants.
type Storage interface {
	// Put writes size bytes from r. The key is taken from WithKey or
	// generated from the sniffed content type.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)
	// Get opens the object under key. The caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// URL returns a public or presigned link to key.
	URL(ctx context.Context, key string, opts ...URLOption) (string, error)
}

// PublicURLer builds unsigned links locally.
type PublicURLer interface {
	PublicURL(key string) string
}

// ACL is the visibility of a stored object.
type ACL string

const (
	ACLPrivate    ACL = "private"
	ACLPublicRead ACL = "public-read"
)

// DefaultRegion is assumed when Config.Region is empty.
const DefaultRegion = "us-east-1"

// Config describes an S3 compatible bucket.
// Bucket, AccessKey and SecretKey are mandatory.
type Config struct {
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint points the client at MinIO or another S3 compatible service.
	Endpoint string
	Region   string
	// PublicURL replaces the bucket host in unsigned links, e.g. a CDN.
	PublicURL string
	// DefaultACL is public-read unless set.
	DefaultACL ACL
	// PathStyle addresses objects as endpoint/bucket/key.
	PathStyle bool
}

// FileInfo describes a stored object.
type FileInfo struct {
	Key         string
	ContentType string
	ACL         ACL
	Size        int64
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.DefaultACL == "" {
		c.DefaultACL = ACLPublicRead
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
