// Package logger provides structured logging with context extraction and Sentry integration.
//
// Loggers are plain *slog.Logger values. The package adds two things on top of
// log/slog: a handler decorator that injects request-scoped attributes pulled
// from the context, and an optional fan-out to Sentry.
//
// # Basic Usage
//
//	log := logger.NewWithConfig(logger.Config{Format: logger.FormatText, Level: "debug"}, os.Stderr,
//		middlewares.RequestIDExtractor(),
//	)
//	log.InfoContext(ctx, "submission relayed", slog.String("submission_id", id))
//	// time=... level=INFO msg="submission relayed" submission_id=... request_id=...
//
// # Context Extractors
//
// A ContextExtractor is called on every log call and returns false to skip the
// attribute for that entry:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// # Sentry Integration
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    "warn",
//	}, logger.Config{Level: "info"})
//
// Errors create Issues in Sentry; records at MinLevel and above are stored as
// logs. With an empty DSN the logger writes to stdout only, so the same code
// path works in development. Register [SentryFlushHook] as a shutdown hook to
// drain buffered events before exit.
package logger
