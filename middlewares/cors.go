package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/formrelay/internal"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

// DefaultCORSConfig is the relay policy: POST from any origin.
var DefaultCORSConfig = CORSConfig{
	AllowMethods: []string{http.MethodPost, http.MethodOptions},
	AllowHeaders: []string{"Content-Type"},
	MaxAge:       DefaultCORSMaxAge,
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins is the allow-list of origins. Empty means every origin is
	// accepted and the request origin is echoed back.
	AllowOrigins []string

	// AllowMethods specifies the methods announced on preflight.
	AllowMethods []string

	// AllowHeaders specifies the request headers announced on preflight.
	AllowHeaders []string

	// EnforceOrigin rejects non-preflight requests whose Origin is not in
	// AllowOrigins with 403. Requests without an Origin header pass.
	EnforceOrigin bool

	// MaxAge specifies how long preflight responses can be cached.
	MaxAge time.Duration
}

// Open reports whether the policy accepts every origin.
func (cfg CORSConfig) Open() bool {
	return len(cfg.AllowOrigins) == 0
}

// Allowed reports whether a request from origin may proceed.
func (cfg CORSConfig) Allowed(origin string) bool {
	if origin == "" || cfg.Open() {
		return true
	}
	return slices.Contains(cfg.AllowOrigins, origin)
}

// AllowOrigin returns the Access-Control-Allow-Origin value for a request.
// A listed origin is echoed; an unlisted one gets the first configured origin.
// Without an allow-list the request origin is echoed, or "*" when absent.
func (cfg CORSConfig) AllowOrigin(origin string) string {
	if cfg.Open() {
		if origin == "" {
			return "*"
		}
		return origin
	}
	if slices.Contains(cfg.AllowOrigins, origin) {
		return origin
	}
	return cfg.AllowOrigins[0]
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins sets the allowed origins. Blank entries are dropped.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOrigins = nil
		for _, o := range origins {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	}
}

// WithAllowMethods sets the methods announced on preflight.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders sets the allowed request headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithEnforceOrigin turns disallowed origins into 403 Forbidden.
func WithEnforceOrigin() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.EnforceOrigin = true
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(duration time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = duration
	}
}

// NewCORSConfig builds a config from DefaultCORSConfig and options.
func NewCORSConfig(opts ...CORSOption) CORSConfig {
	cfg := CORSConfig{
		AllowMethods: DefaultCORSConfig.AllowMethods,
		AllowHeaders: DefaultCORSConfig.AllowHeaders,
		MaxAge:       DefaultCORSConfig.MaxAge,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// CORS returns middleware that writes CORS headers on every response and
// answers preflight (OPTIONS) requests with 204.
func CORS(opts ...CORSOption) internal.Middleware {
	return CORSWithConfig(NewCORSConfig(opts...))
}

// CORSWithConfig is CORS with a prepared config.
func CORSWithConfig(cfg CORSConfig) internal.Middleware {
	allowMethodsStr := strings.Join(cfg.AllowMethods, ", ")
	allowHeadersStr := strings.Join(cfg.AllowHeaders, ", ")
	maxAgeStr := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")

			headers := c.Response().Header()
			headers.Add("Vary", "Origin")
			headers.Set("Access-Control-Allow-Origin", cfg.AllowOrigin(origin))

			if c.Request().Method == http.MethodOptions {
				headers.Set("Access-Control-Allow-Methods", allowMethodsStr)
				headers.Set("Access-Control-Allow-Headers", allowHeadersStr)
				if cfg.MaxAge > 0 {
					headers.Set("Access-Control-Max-Age", maxAgeStr)
				}
				return c.NoContent(http.StatusNoContent)
			}

			if cfg.EnforceOrigin && !cfg.Allowed(origin) {
				return internal.ErrForbidden("Forbidden")
			}

			return next(c)
		}
	}
}
