package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/assetkit/pkg/logger"
	"github.com/dmitrymomot/assetkit/pkg/storage"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// ProbeKey is looked up by StorageCheck. It does not need to exist.
const ProbeKey = ".assetkit-healthcheck"

// CheckFunc matches the healthcheck closures of assetstore and storage.
type CheckFunc func(ctx context.Context) error

// Checks is a map of named health check functions.
type Checks map[string]CheckFunc

// Response is the aggregated result of a run.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty" yaml:"checks,omitempty"`
	Status string           `json:"status" yaml:"status"`
}

// Healthy reports whether every check passed.
func (r *Response) Healthy() bool {
	return r.Status == StatusHealthy
}

// Err returns ErrCheckFailed naming the failed checks, or nil.
func (r *Response) Err() error {
	if r.Healthy() {
		return nil
	}
	var errs []error
	for name, c := range r.Checks {
		if c.Status != StatusHealthy {
			errs = append(errs, fmt.Errorf("%s: %s", name, c.Error))
		}
	}
	return errors.Join(append([]error{ErrCheckFailed}, errs...)...)
}

// Check is the status of a single health check.
type Check struct {
	Status string `json:"status" yaml:"status"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures health check behavior.
type Option func(*config)

// WithTimeout sets the timeout for all checks.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes all checks concurrently under a shared deadline. A failing
// check does not cancel the others.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	cfg := newConfig(opts...)
	resp := &Response{Status: StatusHealthy}
	if len(checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	resp.Checks = make(map[string]Check, len(checks))
	for name, check := range checks {
		g.Go(func() error {
			c := runCheck(ctx, cfg.logger, name, check)
			mu.Lock()
			defer mu.Unlock()
			resp.Checks[name] = c
			if c.Status != StatusHealthy {
				resp.Status = StatusUnhealthy
			}
			return nil
		})
	}
	_ = g.Wait()
	return resp
}

func runCheck(ctx context.Context, log *slog.Logger, name string, check CheckFunc) Check {
	err := ErrNoCheck
	if check != nil {
		err = check(ctx)
	}
	if err == nil {
		return Check{Status: StatusHealthy}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %v", ErrCheckTimeout, err)
	}
	log.WarnContext(ctx, "health check failed", slog.String("check", name), slog.String("error", err.Error()))
	return Check{Status: StatusUnhealthy, Error: err.Error()}
}

// StorageCheck looks up ProbeKey under prefix. A missing object is
// healthy; failing to ask is not.
func StorageCheck(s storage.Storage, prefix string) CheckFunc {
	key := ProbeKey
	if prefix != "" {
		key = prefix + "/" + ProbeKey
	}
	return func(ctx context.Context) error {
		if s == nil {
			return ErrNoStorage
		}
		_, err := s.Exists(ctx, key)
		return err
	}
}
