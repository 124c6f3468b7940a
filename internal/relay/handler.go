package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/middlewares"
	"github.com/dmitrymomot/formrelay/pkg/health"
)

// Relay paths.
const (
	DefaultPath = "/api/contact"
	// LegacyPath is where static pages built for serverless hosting post to.
	LegacyPath = "/.netlify/functions/contact"
)

// Options configures the relay handler.
type Options struct {
	// Path is the primary relay path. Defaults to DefaultPath.
	Path string
	// Aliases are extra paths served by the same handler.
	Aliases []string
	// CORS is the origin policy. Origin enforcement is always enabled.
	CORS middlewares.CORSConfig
}

// Handler serves the relay endpoint.
type Handler struct {
	sender Sender
	cors   middlewares.CORSConfig
	paths  []string
}

// NewHandler creates a relay handler delivering through sender.
func NewHandler(sender Sender, opts Options) *Handler {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	paths := []string{path}
	for _, alias := range opts.Aliases {
		if alias != "" && !slices.Contains(paths, alias) {
			paths = append(paths, alias)
		}
	}

	cors := opts.CORS
	if len(cors.AllowMethods) == 0 && len(cors.AllowHeaders) == 0 {
		cors = middlewares.NewCORSConfig(middlewares.WithAllowOrigins(opts.CORS.AllowOrigins...))
	}
	cors.EnforceOrigin = true

	return &Handler{
		sender: sender,
		cors:   cors,
		paths:  paths,
	}
}

// Paths returns the paths the relay answers on.
func (h *Handler) Paths() []string {
	return slices.Clone(h.paths)
}

// Routes implements internal.Handler.
// Every relay path first gets a 405 fallback for all methods, outside the
// CORS group, so a wrong method is reported before the origin check and a
// catch-all static mount never shadows the relay.
func (h *Handler) Routes(r internal.Router) {
	for _, p := range h.paths {
		r.Any(p, h.MethodNotAllowed)
	}
	r.Group(func(r internal.Router) {
		r.Use(middlewares.CORSWithConfig(h.cors))
		for _, p := range h.paths {
			r.OPTIONS(p, h.preflight)
			r.POST(p, h.send)
		}
	})
}

// preflight is normally answered by the CORS middleware.
func (h *Handler) preflight(c internal.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// send runs the relay flow: configuration, decode, honeypot, validate, dispatch.
// Method and origin are already checked by routing and the CORS middleware.
func (h *Handler) send(c internal.Context) error {
	if missing := h.sender.Missing(); len(missing) > 0 {
		c.LogError("email provider not configured",
			slog.String("provider", h.sender.Name()),
			slog.Any("missing", missing),
		)
		return internal.ErrInternal(msgNotConfigured, internal.WithError(&ConfigError{Missing: missing}))
	}

	sub, err := DecodeSubmission(c.Request().Body)
	if err != nil {
		return internal.ErrBadRequest(msgInvalidJSON, internal.WithError(err))
	}
	sub.ID = uuid.NewString()

	if sub.IsSpam() {
		c.LogInfo("honeypot triggered, submission dropped", slog.String("submission_id", sub.ID))
		return c.JSON(http.StatusOK, Response{OK: true})
	}

	if err := sub.Validate(); err != nil {
		return internal.ErrBadRequest(msgMissingFields, internal.WithError(err))
	}

	start := time.Now()
	if err := h.sender.Send(c, sub); err != nil {
		attrs := []any{
			slog.String("submission_id", sub.ID),
			slog.String("provider", h.sender.Name()),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		}

		var provErr *ProviderError
		var cfgErr *ConfigError
		switch {
		case errors.As(err, &provErr):
			c.LogError("email provider rejected submission", append(attrs, slog.Int("upstream_status", provErr.Status))...)
			return internal.ErrBadGateway(msgProviderError, internal.WithError(provErr))
		case errors.Is(err, ErrProviderUnreachable):
			c.LogError("email provider unreachable", attrs...)
			return internal.ErrBadGateway(msgUnreachable, internal.WithError(err))
		case errors.As(err, &cfgErr):
			return internal.ErrInternal(msgNotConfigured, internal.WithError(cfgErr))
		}
		return err
	}

	c.LogInfo("submission relayed",
		slog.String("submission_id", sub.ID),
		slog.String("provider", h.sender.Name()),
		slog.Duration("duration", time.Since(start)),
	)
	return c.JSON(http.StatusOK, Response{OK: true})
}

// MethodNotAllowed answers 405. On relay paths the response carries
// Allow: POST and the CORS headers so browsers can read it.
func (h *Handler) MethodNotAllowed(c internal.Context) error {
	if !slices.Contains(h.paths, c.Request().URL.Path) {
		return internal.ErrMethodNotAllowed(msgMethodNotAllowed)
	}

	cors := h.cors
	cors.EnforceOrigin = false
	return middlewares.CORSWithConfig(cors)(func(internal.Context) error {
		return internal.ErrMethodNotAllowed(msgMethodNotAllowed, internal.WithHeader("Allow", http.MethodPost))
	})(c)
}

// ProviderCheck is a readiness check that fails while provider credentials
// are missing.
func (h *Handler) ProviderCheck() health.CheckFunc {
	return func(context.Context) error {
		if missing := h.sender.Missing(); len(missing) > 0 {
			return fmt.Errorf("%s: missing %s", h.sender.Name(), strings.Join(missing, ", "))
		}
		return nil
	}
}
