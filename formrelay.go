package formrelay

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/internal/config"
	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/middlewares"
	"github.com/dmitrymomot/formrelay/pkg/emailjs"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/mailer/resend"
)

// Type aliases - public API
type (
	// App is the configured HTTP application.
	App = internal.App

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Config is the process configuration.
	Config = config.Config

	// Sender delivers one submission to an email provider.
	Sender = relay.Sender

	// Submission is one decoded contact form.
	Submission = relay.Submission
)

// New builds the relay application from cfg.
//
// Example:
//
//	cfg, err := config.Load("")
//	app, err := formrelay.New(cfg, formrelay.WithLogger(log))
//	err = app.Run(cfg.Address, formrelay.Logger(log))
func New(cfg *Config, opts ...Option) (*App, error) {
	o := &options{
		logger:     logger.NewNope(),
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout},
	}
	for _, opt := range opts {
		opt(o)
	}

	sender := o.sender
	if sender == nil {
		var err error
		sender, err = NewSender(cfg, o.httpClient)
		if err != nil {
			return nil, err
		}
	}

	h := relay.NewHandler(sender, relay.Options{
		Path:    cfg.RelayPath,
		Aliases: []string{relay.LegacyPath},
		CORS:    middlewares.NewCORSConfig(middlewares.WithAllowOrigins(cfg.AllowedOrigins...)),
	})

	if len(cfg.AllowedOrigins) == 0 {
		o.logger.Warn("ALLOWED_ORIGIN is not set, accepting submissions from any origin")
	}
	if missing := sender.Missing(); len(missing) > 0 {
		o.logger.Warn("email provider not configured",
			slog.String("provider", sender.Name()),
			slog.Any("missing", missing),
		)
	}

	appOpts := []internal.Option{
		internal.WithCustomLogger(o.logger),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Recover(),
		),
		internal.WithErrorHandler(relay.ErrorHandler),
		internal.WithNotFoundHandler(relay.NotFound),
		internal.WithMethodNotAllowedHandler(h.MethodNotAllowed),
		internal.WithHealthChecks(
			internal.WithReadinessCheck("provider", h.ProviderCheck()),
		),
		internal.WithHandlers(h),
	}
	if cfg.PublicDir != "" {
		if _, err := os.Stat(cfg.PublicDir); err != nil {
			return nil, fmt.Errorf("formrelay: public dir: %w", err)
		}
		appOpts = append(appOpts, internal.WithStaticFiles("/", os.DirFS(cfg.PublicDir), "."))
	}

	return internal.New(appOpts...), nil
}

// NewSender builds the sender for cfg.Provider. Missing credentials are not
// an error here; the relay reports them per request. A nil httpClient gets
// one with cfg.UpstreamTimeout.
func NewSender(cfg *Config, httpClient *http.Client) (Sender, error) {
	switch cfg.Provider {
	case relay.ProviderEmailJS:
		client := emailjs.New(cfg.EmailJS,
			emailjs.WithTimeout(cfg.UpstreamTimeout),
			emailjs.WithHTTPClient(httpClient),
		)
		return relay.NewEmailJSSender(client), nil
	case relay.ProviderResend:
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.UpstreamTimeout}
		}
		s, err := relay.NewMailerSender(resend.NewWithClient(cfg.Resend, httpClient), relay.MailerSenderConfig{
			Name:            relay.ProviderResend,
			Missing:         cfg.Resend.Missing,
			Recipient:       cfg.ContactRecipient,
			FallbackSubject: cfg.Mailer.FallbackSubject,
		})
		if err != nil {
			return nil, fmt.Errorf("formrelay: contact template: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
}
