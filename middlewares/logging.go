package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/formrelay/internal"
)

// RequestLogger logs one line per request after the handler returns.
// 5xx responses log at error level, 4xx at warn, everything else at info.
// Errors returned by the handler are passed through unchanged.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := http.StatusOK
			var size int64
			if rw, ok := c.Response().(*internal.ResponseWriter); ok {
				if rw.Status() != 0 {
					status = rw.Status()
				}
				size = rw.Size()
			}
			if err != nil {
				if he := internal.AsHTTPError(err); he != nil {
					status = he.StatusCode()
				} else {
					status = http.StatusInternalServerError
				}
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", size),
				slog.Duration("duration", time.Since(start)),
			}
			if origin := c.Header("Origin"); origin != "" {
				attrs = append(attrs, slog.String("origin", origin))
			}

			switch {
			case status >= http.StatusInternalServerError:
				c.LogError("request", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
