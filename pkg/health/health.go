package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// Probe and check states.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

var (
	// ErrCheckFailed is returned by Run when at least one check fails.
	ErrCheckFailed = errors.New("health: check failed")
	// ErrCheckTimeout marks a check still running at the probe deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)

// CheckFunc reports a dependency as unhealthy by returning an error.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to functions.
type Checks map[string]CheckFunc

// Response is the probe result; JSON probes return it as is.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the outcome of one CheckFunc.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Failed lists unhealthy check names, sorted.
func (r *Response) Failed() []string {
	var names []string
	for _, name := range slices.Sorted(maps.Keys(r.Checks)) {
		if r.Checks[name].Status == StatusUnhealthy {
			names = append(names, name)
		}
	}
	return names
}

type options struct {
	log     *slog.Logger
	timeout time.Duration
}

// Option configures Run and ReadinessHandler.
type Option func(*options)

// WithTimeout bounds a whole probe. Defaults to 5s.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger logs failed checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{timeout: 5 * time.Second, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run executes checks concurrently under one deadline. The error wraps
// ErrCheckFailed and names the failed checks.
func Run(ctx context.Context, checks Checks, opts ...Option) (*Response, error) {
	resp := newOptions(opts).run(ctx, checks)
	if failed := resp.Failed(); len(failed) > 0 {
		return resp, fmt.Errorf("%w: %v", ErrCheckFailed, failed)
	}
	return resp, nil
}

func (o options) run(ctx context.Context, checks Checks) *Response {
	resp := &Response{Status: StatusHealthy}
	if len(checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	names := slices.Collect(maps.Keys(checks))
	results := make([]Check, len(names))

	// Goroutines always return nil so one failure does not cancel the rest.
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			results[i] = o.check(ctx, name, checks[name])
			return nil
		})
	}
	_ = g.Wait()

	resp.Checks = make(map[string]Check, len(names))
	for i, name := range names {
		resp.Checks[name] = results[i]
		if results[i].Status == StatusUnhealthy {
			resp.Status = StatusUnhealthy
		}
	}
	return resp
}

func (o options) check(ctx context.Context, name string, fn CheckFunc) Check {
	err := fn(ctx)
	if err == nil {
		return Check{Status: StatusHealthy}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", ErrCheckTimeout, err)
	}
	o.log.WarnContext(ctx, "health check failed", slog.String("check", name), slog.Any("error", err))
	return Check{Status: StatusUnhealthy, Error: err.Error()}
}
