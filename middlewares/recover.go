package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/formrelay/internal"
)

type recoverOptions struct {
	stackSize int
	noStack   bool
}

// RecoverOption configures Recover.
type RecoverOption func(*recoverOptions)

// WithRecoverStackSize caps the captured stack trace. Defaults to 4 KiB.
func WithRecoverStackSize(size int) RecoverOption {
	return func(o *recoverOptions) {
		if size > 0 {
			o.stackSize = size
		}
	}
}

// WithRecoverDisablePrintStack skips stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(o *recoverOptions) { o.noStack = true }
}

// Recover converts a panic into a 500 *internal.HTTPError wrapping a
// *PanicError, so the error handler still answers in the relay's JSON shape.
// http.ErrAbortHandler is re-panicked.
func Recover(opts ...RecoverOption) internal.Middleware {
	o := recoverOptions{stackSize: 4 << 10}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if e, ok := v.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(v)
				}
				pe := o.capture(v)
				attrs := []any{
					slog.Any("panic", v),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
				}
				if pe.Stack != nil {
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}
				c.LogError("panic recovered", attrs...)
				err = internal.ErrInternal(http.StatusText(http.StatusInternalServerError), internal.WithError(pe))
			}()
			return next(c)
		}
	}
}

func (o recoverOptions) capture(v any) *PanicError {
	pe := &PanicError{Value: v}
	if !o.noStack {
		buf := make([]byte, o.stackSize)
		pe.Stack = buf[:runtime.Stack(buf, false)]
	}
	return pe
}
