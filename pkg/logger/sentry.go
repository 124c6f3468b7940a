package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"         yaml:"dsn"`
	Environment string `env:"SENTRY_ENVIRONMENT" yaml:"environment"`
	// MinLevel is the lowest level stored in Sentry as a log ("warn" sends warnings and errors).
	MinLevel string `env:"SENTRY_MIN_LEVEL" yaml:"min_level"`
}

// Enabled reports whether a DSN is configured.
func (c SentryConfig) Enabled() bool {
	return c.DSN != ""
}

// NewWithSentry creates a logger writing to stdout and, when a DSN is set,
// to Sentry as well. Errors become Sentry issues; records at MinLevel and
// above are stored as Sentry logs. A failed Sentry init is logged and the
// logger falls back to stdout only.
func NewWithSentry(cfg SentryConfig, base Config, extractors ...ContextExtractor) *slog.Logger {
	stdout := newHandler(base, os.Stdout)
	if !cfg.Enabled() {
		return slog.New(withExtractors(stdout, extractors))
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	})
	if err != nil {
		slog.New(stdout).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(withExtractors(stdout, extractors))
	}

	toSentry := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   sentryLevels(ParseLevel(cfg.MinLevel)),
	}.NewSentryHandler(context.Background())

	return slog.New(withExtractors(fanoutHandler{stdout, toSentry}, extractors))
}

// sentryLevels lists the levels at or above min that Sentry stores as logs.
func sentryLevels(min slog.Level) []slog.Level {
	var levels []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= min {
			levels = append(levels, l)
		}
	}
	if len(levels) == 0 {
		return []slog.Level{slog.LevelError}
	}
	return levels
}

// SentryFlushHook returns a shutdown hook that drains buffered Sentry events.
// It is a no-op when Sentry is not configured.
func SentryFlushHook(cfg SentryConfig) func(context.Context) error {
	return func(ctx context.Context) error {
		if !cfg.Enabled() {
			return nil
		}
		timeout := 2 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		sentry.Flush(timeout)
		return nil
	}
}
