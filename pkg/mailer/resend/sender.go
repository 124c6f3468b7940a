package resend

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/formrelay/pkg/mailer"
)

// Sender delivers mailer.Email messages through the Resend API.
type Sender struct {
	client *resend.Client
	from   string
}

// New is NewWithClient with http.DefaultClient.
func New(cfg Config) *Sender {
	return NewWithClient(cfg, nil)
}

// NewWithClient builds a Sender whose API calls go through httpClient, so
// its timeout bounds each send.
func NewWithClient(cfg Config, httpClient *http.Client) *Sender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	client := resend.NewCustomClient(httpClient, cfg.APIKey)
	if base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/"); cfg.BaseURL != "" && err == nil {
		client.BaseURL = base
	}
	return &Sender{
		client: client,
		from:   mailer.Recipient(cfg.SenderName, cfg.SenderEmail),
	}
}

func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		Headers: email.Headers,
		Tags:    tags(email.Tags),
	}
	if email.From != "" {
		req.From = email.From
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: send email: %w", err)
	}
	return nil
}

// tags returns t in name order, or nil when empty.
func tags(t mailer.Tags) []resend.Tag {
	if len(t) == 0 {
		return nil
	}
	out := make([]resend.Tag, 0, len(t))
	for _, name := range slices.Sorted(maps.Keys(t)) {
		out = append(out, resend.Tag{Name: name, Value: t[name]})
	}
	return out
}
