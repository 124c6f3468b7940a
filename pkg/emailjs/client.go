package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 8 << 10
)

// TemplateParams are the variables exposed to the EmailJS template.
type TemplateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// request is the EmailJS send payload.
type request struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams TemplateParams `json:"template_params"`
}

// Client sends templated email through the EmailJS REST API.
type Client struct {
	http   *http.Client
	config Config
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http = &http.Client{Timeout: d}
		}
	}
}

// New creates a client. Configuration is validated on Send, not here, so a
// misconfigured client can still be constructed and report what is missing.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		config: cfg,
		http:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Missing returns the required settings that are not configured.
func (c *Client) Missing() []string {
	return c.config.Missing()
}

// Send makes exactly one request to EmailJS.
// Non-2xx answers return *APIError; transport failures wrap ErrUnreachable.
func (c *Client) Send(ctx context.Context, params TemplateParams) error {
	if missing := c.config.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrNotConfigured, missing)
	}

	body, err := json.Marshal(request{
		ServiceID:      c.config.ServiceID,
		TemplateID:     c.config.TemplateID,
		UserID:         c.config.PublicKey,
		AccessToken:    c.config.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.endpoint(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
