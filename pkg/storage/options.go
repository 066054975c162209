package storage

import "time"

// DefaultURLExpiry applies to signed URLs without an explicit expiry.
const DefaultURLExpiry = 15 * time.Minute

// Option configures a single Put.
type Option func(*putOptions)

type putOptions struct {
	key         string
	prefix      string
	contentType string
	acl         ACL
	rules       []ValidationRule
}

func newPutOptions(acl ACL, opts []Option) *putOptions {
	o := &putOptions{acl: acl}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithKey stores the file under key instead of a generated one.
// Attachments pass their interpolated path here.
func WithKey(key string) Option {
	return func(o *putOptions) { o.key = key }
}

// WithPrefix places a generated key under prefix, as prefix/<uuid><ext>.
// It has no effect together with WithKey.
func WithPrefix(prefix string) Option {
	return func(o *putOptions) { o.prefix = prefix }
}

// WithContentType skips sniffing.
func WithContentType(ct string) Option {
	return func(o *putOptions) { o.contentType = ct }
}

// WithACL replaces the backend default for one upload.
func WithACL(acl ACL) Option {
	return func(o *putOptions) { o.acl = acl }
}

// WithValidation checks the upload before anything is written.
// A failing rule aborts the Put with *FileValidationError.
func WithValidation(rules ...ValidationRule) Option {
	return func(o *putOptions) { o.rules = append(o.rules, rules...) }
}

// URLOption configures URL.
type URLOption func(*urlOptions)

type urlOptions struct {
	filename string
	expiry   time.Duration
	signed   bool
}

func newURLOptions(opts []URLOption) *urlOptions {
	o := &urlOptions{expiry: DefaultURLExpiry}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSigned asks for a presigned URL valid for expiry.
// Zero keeps DefaultURLExpiry.
func WithSigned(expiry time.Duration) URLOption {
	return func(o *urlOptions) {
		o.signed = true
		if expiry > 0 {
			o.expiry = expiry
		}
	}
}

// WithDownload asks for a presigned URL that makes clients save the
// object as filename.
func WithDownload(filename string) URLOption {
	return func(o *urlOptions) {
		o.filename = filename
		o.signed = true
	}
}
