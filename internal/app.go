package internal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formrelay/pkg/logger"
)

// App is the HTTP application: a chi router assembled once from Options.
// It is safe for concurrent use and not modified after New returns.
type App struct {
	router       chi.Router
	logger       *slog.Logger
	errorHandler ErrorHandler
	notFound     HandlerFunc
	notAllowed   HandlerFunc
	health       *healthConfig
	middlewares  []Middleware
	handlers     []Handler
	mounts       []mount
}

type mount struct {
	pattern string
	handler http.Handler
}

// New builds an App. Route registration order is fixed: fallback handlers,
// global middleware, health endpoints, handlers, then static mounts.
//
//	app := internal.New(
//	    internal.WithCustomLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(relay.NewHandler(sender, relay.Options{})),
//	    internal.WithErrorHandler(relay.ErrorHandler),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.mountRoutes()
	return a
}

// Router exposes the chi router, mainly for tests and chi.Walk.
func (a *App) Router() chi.Router { return a.router }

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run serves the app on addr and blocks until a graceful shutdown completes.
func (a *App) Run(addr string, opts ...RunOption) error {
	return newServer(opts).run(addr, a.router)
}

func (a *App) mountRoutes() {
	if a.notFound != nil {
		a.router.NotFound(a.wrapHandler(a.notFound))
	}
	if a.notAllowed != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.notAllowed))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.health != nil {
		a.health.register(a.router, a.logger)
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}

	// chi matches the most specific route, but "/" mounts add a catch-all,
	// so they go last.
	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}
}

func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

func (a *App) handleError(c Context, err error) {
	switch {
	case c.Written():
		a.logger.WarnContext(c, "handler error after response was written", slog.Any("error", err))
	case a.errorHandler == nil:
		http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	default:
		if herr := a.errorHandler(c, err); herr != nil {
			a.logger.ErrorContext(c, "error handler failed", slog.Any("error", herr))
		}
	}
}
