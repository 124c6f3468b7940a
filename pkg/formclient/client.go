package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/formrelay/pkg/logger"
)

const (
	defaultTimeout = 30 * time.Second

	// maxResponseBody caps how much of the relay answer is read.
	maxResponseBody = 16 << 10
)

// relayResponse is the relay's JSON answer. Only used for diagnostics.
type relayResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing"`
	OK      bool     `json:"ok"`
}

// Client submits contact forms to a relay endpoint.
type Client struct {
	http     *http.Client
	notifier Notifier
	logger   *slog.Logger
	endpoint string
	messages Messages
	inFlight atomic.Bool
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

// WithNotifier sets where user-facing messages go.
func WithNotifier(n Notifier) Option {
	return func(cl *Client) {
		if n != nil {
			cl.notifier = n
		}
	}
}

// WithMessages overrides the visitor texts. Empty fields keep their defaults.
func WithMessages(m Messages) Option {
	return func(cl *Client) {
		def := DefaultMessages()
		if m.Success == "" {
			m.Success = def.Success
		}
		if m.Failure == "" {
			m.Failure = def.Failure
		}
		if m.Sending == "" {
			m.Sending = def.Sending
		}
		if m.DefaultLabel == "" {
			m.DefaultLabel = def.DefaultLabel
		}
		cl.messages = m
	}
}

// WithLogger sets the developer-facing logger for failure diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New creates a client posting to endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
		notifier: nopNotifier{},
		logger:   logger.NewNope(),
		messages: DefaultMessages(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends the form to the relay.
//
// A filled honeypot resets the form and reports success without a request.
// Otherwise the button is disabled and relabelled until Submit returns, on
// every path including panics. A 2xx answer resets the form; anything else
// notifies the generic failure text and returns a *SubmitError.
func (c *Client) Submit(ctx context.Context, form *Form, button *Button) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrSubmitInProgress
	}
	defer c.inFlight.Store(false)

	if form.IsSpam() {
		form.Reset()
		c.notifier.Success(c.messages.Success)
		return nil
	}

	if button != nil {
		prev := button.set(c.messages.Sending, true)
		defer func() {
			if prev == "" {
				prev = c.messages.DefaultLabel
			}
			button.set(prev, false)
		}()
	}

	if err := c.post(ctx, form.Payload()); err != nil {
		c.logger.ErrorContext(ctx, "contact form error",
			slog.String("endpoint", c.endpoint),
			slog.Int("status", err.StatusCode),
			slog.String("error", err.Error()),
			slog.Any("missing", err.Missing),
		)
		c.notifier.Failure(c.messages.Failure)
		return err
	}

	form.Reset()
	c.notifier.Success(c.messages.Success)
	return nil
}

// post issues exactly one request.
func (c *Client) post(ctx context.Context, payload Payload) *SubmitError {
	body, err := json.Marshal(payload)
	if err != nil {
		return &SubmitError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &SubmitError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SubmitError{Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	subErr := &SubmitError{StatusCode: resp.StatusCode, Message: "Request failed"}
	var rr relayResponse
	if json.Unmarshal(raw, &rr) == nil {
		if rr.Error != "" {
			subErr.Message = rr.Error
		}
		subErr.Missing = rr.Missing
	}
	return subErr
}
