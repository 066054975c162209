package assetkit

import (
	"log/slog"

	"github.com/dmitrymomot/assetkit/pkg/assettype"
	"github.com/dmitrymomot/assetkit/pkg/attachment"
	"github.com/dmitrymomot/assetkit/pkg/processor"
	"github.com/dmitrymomot/assetkit/pkg/storage"
)

// Option configures a Kit.
type Option func(*Kit)

// WithLogger sets the logger shared by every component.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kit) {
		if l != nil {
			k.logger = l
		}
	}
}

// WithRegistry sets the type registry.
// Defaults to a registry with the built-in types.
func WithRegistry(r *assettype.Registry) Option {
	return func(k *Kit) {
		if r != nil {
			k.registry = r
		}
	}
}

// WithStyleRegistry sets the style registry.
// Defaults to the built-in styles plus configured additional thumbnails.
func WithStyleRegistry(r *attachment.StyleRegistry) Option {
	return func(k *Kit) {
		if r != nil {
			k.styles = r
		}
	}
}

// WithProcessors sets the processor registry.
// Defaults to a registry with the thumbnail processor.
func WithProcessors(r *processor.Registry) Option {
	return func(k *Kit) {
		if r != nil {
			k.processors = r
		}
	}
}

// WithStorage sets the storage client used for the configured backend.
// Without it the client is opened from configuration on first use.
func WithStorage(s storage.Storage) Option {
	return func(k *Kit) {
		if s != nil {
			k.storage = s
		}
	}
}

// WithBaseURL sets the URL prefix of filesystem storage.
// Defaults to "/".
func WithBaseURL(u string) Option {
	return func(k *Kit) {
		k.baseURL = u
	}
}

// WithRoot sets the directory substituted for ":root" in path templates.
// Defaults to ".".
func WithRoot(root string) Option {
	return func(k *Kit) {
		if root != "" {
			k.root = root
		}
	}
}

// WithConcurrency bounds parallel style rendering.
// Defaults to 4.
func WithConcurrency(n int) Option {
	return func(k *Kit) {
		if n > 0 {
			k.concurrency = n
		}
	}
}
