// Package internal provides the HTTP application core used by formrelay.
//
// Import "github.com/dmitrymomot/formrelay" for the assembled relay; this
// package holds the building blocks it is made of.
//
// # Core Types
//
//   - App: HTTP routing, middleware and graceful shutdown
//   - Context: request/response access, logging and JSON helpers
//   - Router: interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: route handler that returns an error
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned by handlers
//   - HTTPError: error carrying a status code, a client-safe message and
//     response headers
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed straight to outbound
// calls. A client disconnect or server shutdown cancels them:
//
//	func (h *Handler) send(c internal.Context) error {
//	    if err := h.sender.Send(c, sub); err != nil {
//	        return internal.ErrBadGateway("Email provider error", internal.WithError(err))
//	    }
//	    return c.JSON(http.StatusOK, Response{OK: true})
//	}
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(relayHandler),
//	    internal.WithErrorHandler(relay.ErrorHandler),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("provider", check)),
//	)
//	err := app.Run(":8080", internal.Logger(log))
//
// Global middleware wraps the not-found and method-not-allowed handlers too.
// Middleware added with Router.Use inside Group applies only to that group.
// Static file mounts are registered last so explicit routes win.
//
// # Errors
//
// Handlers return errors instead of writing failure responses. The configured
// ErrorHandler renders them; without one, a plain 500 is written. An error
// returned after the response was committed is only logged.
//
// # Shutdown
//
// Run listens, serves, and on SIGINT, SIGTERM or cancellation of the base
// context shuts the server down within the shutdown timeout, then runs the
// shutdown hooks in registration order.
package internal
