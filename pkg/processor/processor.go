package processor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/assetkit/pkg/attachment"
	"github.com/dmitrymomot/assetkit/pkg/logger"
)

// ThumbnailName is the name of the built-in image processor.
const ThumbnailName = "thumbnail"

// Processor renders one style of an uploaded file.
type Processor interface {
	Process(ctx context.Context, src io.Reader, style attachment.Style) (io.Reader, error)
}

// Func adapts a function to Processor.
type Func func(ctx context.Context, src io.Reader, style attachment.Style) (io.Reader, error)

// Process implements Processor.
func (f Func) Process(ctx context.Context, src io.Reader, style attachment.Style) (io.Reader, error) {
	return f(ctx, src, style)
}

// Registry maps processor names to implementations.
type Registry struct {
	processors map[string]Processor
	logger     *slog.Logger
	mu         sync.RWMutex
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used by pipelines.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a registry with the thumbnail processor registered.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		processors: map[string]Processor{ThumbnailName: NewThumbnail()},
		logger:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces a processor.
func (r *Registry) Register(name string, p Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processors[name] = p
}

// Get returns the processor registered under name.
func (r *Registry) Get(name string) (Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.processors[name]
	return p, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.processors))
	for name := range r.processors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Chain resolves names into a pipeline that runs the processors in order,
// each reading the output of the previous one.
func (r *Registry) Chain(names ...string) (*Pipeline, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty processor list", ErrUnknownProcessor)
	}
	p := &Pipeline{names: slices.Clone(names), logger: r.logger}
	for _, name := range names {
		proc, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProcessor, name)
		}
		p.steps = append(p.steps, proc)
	}
	return p, nil
}

// Pipeline is a resolved processor chain.
type Pipeline struct {
	logger *slog.Logger
	names  []string
	steps  []Processor
}

// Names returns the processor names of the pipeline.
func (p *Pipeline) Names() []string {
	return slices.Clone(p.names)
}

// Process implements Processor.
func (p *Pipeline) Process(ctx context.Context, src io.Reader, style attachment.Style) (io.Reader, error) {
	out := src
	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := step.Process(ctx, out, style)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", p.names[i], err)
		}
		p.logger.DebugContext(ctx, "style processed",
			slog.String("processor", p.names[i]),
			slog.String("style", style.Name),
		)
		out = next
	}
	return out, nil
}

var _ Processor = (*Pipeline)(nil)
