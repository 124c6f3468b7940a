package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/pkg/emailjs"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
)

var sample = relay.Submission{
	ID:      "sub-1",
	Name:    "Ann <b>Lee</b>",
	Email:   "ann@example.com",
	Phone:   "+1 555 0100",
	Message: "Hello <script>alert(1)</script> there",
}

func emailjsConfig(endpoint string) emailjs.Config {
	return emailjs.Config{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub", Endpoint: endpoint}
}

func TestEmailJSSender(t *testing.T) {
	t.Parallel()

	t.Run("success maps template params", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		}))
		t.Cleanup(srv.Close)

		s := relay.NewEmailJSSender(emailjs.New(emailjsConfig(srv.URL)))
		require.NoError(t, s.Send(context.Background(), sample))

		params, ok := got["template_params"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, sample.Name, params["from_name"])
		assert.Equal(t, sample.Email, params["from_email"])
		assert.Equal(t, sample.Phone, params["phone"])
		assert.Equal(t, sample.Message, params["message"])
		assert.Equal(t, relay.ProviderEmailJS, s.Name())
		assert.Empty(t, s.Missing())
	})

	t.Run("non-2xx is ProviderError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("API calls are disabled for non-browser applications"))
		}))
		t.Cleanup(srv.Close)

		err := relay.NewEmailJSSender(emailjs.New(emailjsConfig(srv.URL))).Send(context.Background(), sample)

		var provErr *relay.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, http.StatusForbidden, provErr.Status)
		assert.Equal(t, "API calls are disabled for non-browser applications", provErr.Details)
	})

	t.Run("transport failure is unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		endpoint := srv.URL
		srv.Close()

		err := relay.NewEmailJSSender(emailjs.New(emailjsConfig(endpoint))).Send(context.Background(), sample)
		require.ErrorIs(t, err, relay.ErrProviderUnreachable)
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()

		s := relay.NewEmailJSSender(emailjs.New(emailjs.Config{ServiceID: "svc"}))
		assert.Equal(t, []string{"EMAILJS_TEMPLATE_ID", "EMAILJS_PUBLIC_KEY"}, s.Missing())

		var cfgErr *relay.ConfigError
		require.ErrorAs(t, s.Send(context.Background(), sample), &cfgErr)
	})
}

func TestMailerSender(t *testing.T) {
	t.Parallel()

	newSender := func(t *testing.T, backend mailer.SenderFunc, recipient string) *relay.MailerSender {
		t.Helper()
		s, err := relay.NewMailerSender(backend, relay.MailerSenderConfig{
			Name:      relay.ProviderResend,
			Recipient: recipient,
			Missing:   func() []string { return nil },
		})
		require.NoError(t, err)
		return s
	}

	t.Run("renders sanitized email", func(t *testing.T) {
		t.Parallel()

		var got *mailer.Email
		s := newSender(t, func(_ context.Context, e *mailer.Email) error {
			got = e
			return nil
		}, "owner@example.com")

		require.NoError(t, s.Send(context.Background(), sample))
		require.NotNil(t, got)

		assert.Equal(t, []string{"owner@example.com"}, got.To)
		assert.Equal(t, "ann@example.com", got.ReplyTo)
		assert.Equal(t, "New message from Ann Lee", got.Subject)
		assert.Contains(t, got.HTML, "Ann Lee")
		assert.Contains(t, got.HTML, "+1 555 0100")
		assert.Contains(t, got.HTML, "sub-1")
		assert.NotContains(t, got.HTML, "<script>")
		assert.Equal(t, "contact-form", got.Tags["source"])
	})

	t.Run("invalid visitor address skips reply-to", func(t *testing.T) {
		t.Parallel()

		var got *mailer.Email
		s := newSender(t, func(_ context.Context, e *mailer.Email) error {
			got = e
			return nil
		}, "owner@example.com")

		sub := sample
		sub.Email = "not an email"
		require.NoError(t, s.Send(context.Background(), sub))
		assert.Empty(t, got.ReplyTo)
	})

	t.Run("missing recipient", func(t *testing.T) {
		t.Parallel()

		s, err := relay.NewMailerSender(mailer.SenderFunc(func(context.Context, *mailer.Email) error { return nil }),
			relay.MailerSenderConfig{
				Name:    relay.ProviderResend,
				Missing: func() []string { return []string{"RESEND_API_KEY"} },
			})
		require.NoError(t, err)
		assert.Equal(t, []string{"RESEND_API_KEY", "CONTACT_RECIPIENT"}, s.Missing())
	})

	t.Run("api error is ProviderError without status", func(t *testing.T) {
		t.Parallel()

		s := newSender(t, func(context.Context, *mailer.Email) error {
			return errors.New("resend: failed to send email: invalid from address")
		}, "owner@example.com")

		var provErr *relay.ProviderError
		require.ErrorAs(t, s.Send(context.Background(), sample), &provErr)
		assert.Zero(t, provErr.Status)
		assert.Contains(t, provErr.Details, "invalid from address")
	})

	t.Run("transport error is unreachable", func(t *testing.T) {
		t.Parallel()

		s := newSender(t, func(context.Context, *mailer.Email) error {
			return &url.Error{Op: "Post", URL: "https://api.resend.com/emails", Err: errors.New("connection refused")}
		}, "owner@example.com")

		require.ErrorIs(t, s.Send(context.Background(), sample), relay.ErrProviderUnreachable)
	})
}
