package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Context is what handlers and middleware receive. It is also a
// context.Context bound to the request, so it can be passed to outbound calls
// and is cancelled when the client goes away or the server shuts down.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	// Context returns the current request context, including values added with Set.
	Context() context.Context

	// Param returns a chi URL parameter, or "" when the route has none.
	Param(name string) string
	// Header reads a request header.
	Header(name string) string
	// SetHeader sets a response header.
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Error builds an *HTTPError for the handler to return.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether the status line has been sent.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a request-scoped value. Logger context extractors see it.
	Set(key, value any)
	Get(key any) any
}

type requestContext struct {
	req *http.Request
	rw  *ResponseWriter
	log *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	return &requestContext{req: r, rw: rw, log: app.logger}
}

func (c *requestContext) Request() *http.Request        { return c.req }
func (c *requestContext) Response() http.ResponseWriter { return c.rw }
func (c *requestContext) Context() context.Context      { return c.req.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.req.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.req.Context().Done() }
func (c *requestContext) Err() error                  { return c.req.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.req.Context().Value(key) }

func (c *requestContext) Param(name string) string  { return chi.URLParam(c.req, name) }
func (c *requestContext) Header(name string) string { return c.req.Header.Get(name) }

func (c *requestContext) SetHeader(name, value string) {
	c.rw.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.begin(code, "application/json; charset=utf-8")
	return json.NewEncoder(c.rw).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.begin(code, "text/plain; charset=utf-8")
	_, err := c.rw.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.rw.WriteHeader(code)
	return nil
}

// begin sets the content type and sends the status line.
func (c *requestContext) begin(code int, contentType string) {
	c.rw.Header().Set("Content-Type", contentType)
	c.rw.WriteHeader(code)
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool { return c.rw.Written() }

func (c *requestContext) Logger() *slog.Logger { return c.log }

func (c *requestContext) LogDebug(msg string, attrs ...any) { c.logAt(slog.LevelDebug, msg, attrs) }
func (c *requestContext) LogInfo(msg string, attrs ...any)  { c.logAt(slog.LevelInfo, msg, attrs) }
func (c *requestContext) LogWarn(msg string, attrs ...any)  { c.logAt(slog.LevelWarn, msg, attrs) }
func (c *requestContext) LogError(msg string, attrs ...any) { c.logAt(slog.LevelError, msg, attrs) }

func (c *requestContext) logAt(level slog.Level, msg string, attrs []any) {
	c.log.Log(c.req.Context(), level, msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.req = c.req.WithContext(context.WithValue(c.req.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.req.Context().Value(key) }
