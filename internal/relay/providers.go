package relay

import (
	"context"
	"embed"
	"errors"
	"net"
	"net/mail"
	"net/url"

	"github.com/dmitrymomot/formrelay/pkg/emailjs"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/sanitizer"
)

// Provider names accepted by MAIL_PROVIDER.
const (
	ProviderEmailJS = "emailjs"
	ProviderResend  = "resend"
)

// contactTemplate is rendered for mailer-backed providers.
const contactTemplate = "contact.md"

//go:embed templates
var templatesFS embed.FS

// EmailJSSender forwards submissions to EmailJS.
type EmailJSSender struct {
	client *emailjs.Client
}

// NewEmailJSSender wraps an EmailJS client.
func NewEmailJSSender(client *emailjs.Client) *EmailJSSender {
	return &EmailJSSender{client: client}
}

func (s *EmailJSSender) Name() string { return ProviderEmailJS }

func (s *EmailJSSender) Missing() []string { return s.client.Missing() }

// Send maps the submission to EmailJS template params.
func (s *EmailJSSender) Send(ctx context.Context, sub Submission) error {
	err := s.client.Send(ctx, emailjs.TemplateParams{
		FromName:  sub.Name,
		FromEmail: sub.Email,
		Phone:     sub.Phone,
		Message:   sub.Message,
	})
	if err == nil {
		return nil
	}

	var apiErr *emailjs.APIError
	switch {
	case errors.As(err, &apiErr):
		return NewProviderError(ProviderEmailJS, apiErr.StatusCode, apiErr.Body)
	case errors.Is(err, emailjs.ErrUnreachable):
		return errors.Join(ErrProviderUnreachable, err)
	case errors.Is(err, emailjs.ErrNotConfigured):
		return &ConfigError{Missing: s.client.Missing()}
	}
	return err
}

// MailerSender renders the contact template and sends it to one recipient.
type MailerSender struct {
	mailer    *mailer.Mailer
	name      string
	recipient string
	missing   func() []string
}

// MailerSenderConfig configures NewMailerSender.
type MailerSenderConfig struct {
	// Missing reports unset provider credentials.
	Missing func() []string
	// Name is the provider name, e.g. "resend".
	Name string
	// Recipient is the site owner's inbox.
	Recipient string
	// FallbackSubject is used when the template has no Subject.
	FallbackSubject string
}

// NewMailerSender builds a sender on top of any mailer.Sender backend using
// the embedded contact template and bluemonday-sanitized HTML.
func NewMailerSender(backend mailer.Sender, cfg MailerSenderConfig) (*MailerSender, error) {
	renderer := mailer.NewRendererWithConfig(templatesFS, mailer.RendererConfig{
		TemplateDir: "templates",
		LayoutDir:   "templates/layouts",
		Sanitize:    sanitizer.SanitizeHTML,
	})

	// Fail at startup rather than on the first submission
	if _, err := renderer.Render(mailer.DefaultConfig().DefaultLayout, contactTemplate, contactData{}); err != nil {
		return nil, err
	}

	return &MailerSender{
		mailer: mailer.New(backend, renderer, mailer.Config{
			FallbackSubject: cfg.FallbackSubject,
		}),
		name:      cfg.Name,
		recipient: cfg.Recipient,
		missing:   cfg.Missing,
	}, nil
}

func (s *MailerSender) Name() string { return s.name }

// Missing adds CONTACT_RECIPIENT to the backend's missing settings.
func (s *MailerSender) Missing() []string {
	var missing []string
	if s.missing != nil {
		missing = append(missing, s.missing()...)
	}
	if s.recipient == "" {
		missing = append(missing, "CONTACT_RECIPIENT")
	}
	return missing
}

// contactData is what the contact template sees.
type contactData struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Message string
}

// Send emails the submission to the recipient with Reply-To set to the
// visitor when their address parses.
func (s *MailerSender) Send(ctx context.Context, sub Submission) error {
	params := mailer.SendParams{
		To:       s.recipient,
		Template: contactTemplate,
		Tags:     mailer.Tags{"source": "contact-form"},
		Data: contactData{
			ID:      sub.ID,
			Name:    sanitizer.StripTags(sub.Name),
			Email:   sanitizer.StripTags(sub.Email),
			Phone:   sanitizer.StripTags(sub.Phone),
			Message: sub.Message,
		},
	}
	if addr, err := mail.ParseAddress(sub.Email); err == nil {
		params.ReplyTo = addr.Address
	}

	err := s.mailer.Send(ctx, params)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mailer.ErrRenderFailed), errors.Is(err, mailer.ErrNoRecipient):
		return err
	case isTransportError(err):
		return errors.Join(ErrProviderUnreachable, err)
	}
	return NewProviderError(s.name, 0, err.Error())
}

// isTransportError reports failures where no HTTP response was received.
func isTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
