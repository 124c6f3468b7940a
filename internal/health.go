package internal

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formrelay/pkg/health"
)

// HealthOption configures WithHealthChecks.
type HealthOption func(*healthConfig)

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// WithLivenessPath moves the liveness probe from /health/live.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath moves the readiness probe from /health/ready.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named check to the readiness probe.
//
//	internal.WithReadinessCheck("provider", h.ProviderCheck())
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = health.Checks{}
		}
		c.checks[name] = fn
	}
}

func newHealthConfig(opts []HealthOption) *healthConfig {
	c := &healthConfig{
		livenessPath:  "/health/live",
		readinessPath: "/health/ready",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *healthConfig) register(r chi.Router, log *slog.Logger) {
	r.Get(c.livenessPath, health.LivenessHandler())
	r.Get(c.readinessPath, health.ReadinessHandler(c.checks, health.WithLogger(log)))
}
