package internal

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/formrelay/pkg/logger"
)

// Option configures New.
type Option func(*App)

// WithMiddleware appends global middleware. The first one listed runs
// outermost. Global middleware also wraps the not-found and
// method-not-allowed handlers.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) { a.middlewares = append(a.middlewares, mw...) }
}

// WithHandlers registers route providers.
func WithHandlers(h ...Handler) Option {
	return func(a *App) { a.handlers = append(a.handlers, h...) }
}

// WithStaticFiles serves subDir of fsys under pattern. It panics if subDir
// is not a valid path.
//
//	internal.WithStaticFiles("/", os.DirFS("./public"), ".")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		a.mounts = append(a.mounts, mount{pattern: pattern, handler: staticHandler(pattern, sub)})
	}
}

// WithErrorHandler sets how handler errors are rendered. Without one a plain
// text 500 is written.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.errorHandler = h }
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFound = h }
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.notAllowed = h }
}

// WithHealthChecks serves a liveness probe that always answers OK and a
// readiness probe that runs the configured checks in parallel.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) { a.health = newHealthConfig(opts) }
}

// WithLogger logs as JSON to stdout tagged with component.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger replaces the app logger. A nil logger is ignored.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
