package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/pkg/logger"
)

type requestIDKey struct{}

// Client-supplied IDs longer than this are replaced.
const maxRequestIDLength = 128

type requestIDOptions struct {
	generate func() string
	headers  []string
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDOptions)

// WithRequestIDHeaders replaces the inbound headers searched for an
// existing ID. The default list is X-Request-ID, X-Correlation-ID and
// X-Nf-Request-Id.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(o *requestIDOptions) { o.headers = headers }
}

// WithRequestIDGenerator replaces uuid.NewString.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(o *requestIDOptions) {
		if gen != nil {
			o.generate = gen
		}
	}
}

// RequestID tags every request with an ID, reusing one set by a proxy in
// front of the relay. The ID is echoed in X-Request-ID and is readable with
// GetRequestID.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	o := requestIDOptions{
		generate: uuid.NewString,
		headers:  []string{"X-Request-ID", "X-Correlation-ID", "X-Nf-Request-Id"},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := o.inbound(c)
			if id == "" {
				id = o.generate()
			}
			c.Set(requestIDKey{}, id)
			c.SetHeader("X-Request-ID", id)
			return next(c)
		}
	}
}

func (o requestIDOptions) inbound(c internal.Context) string {
	for _, name := range o.headers {
		if v := c.Header(name); v != "" && len(v) <= maxRequestIDLength {
			return v
		}
	}
	return ""
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds request_id to log records made with a request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := GetRequestID(ctx)
		return slog.String("request_id", id), id != ""
	}
}
