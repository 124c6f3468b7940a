package relay

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formrelay/internal"
)

// Client-facing error messages.
const (
	msgMethodNotAllowed = "Method not allowed"
	msgInvalidJSON      = "Invalid JSON"
	msgMissingFields    = "Missing required fields"
	msgNotConfigured    = "Email service is not configured"
	msgProviderError    = "Email provider error"
	msgUnreachable      = "Email provider unreachable"
	msgNotFound         = "Not found"
)

// ConfigError lists required provider settings that are empty.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "relay: email service is not configured: missing " + strings.Join(e.Missing, ", ")
}

// Response is the JSON body of every relay answer.
type Response struct {
	Error   string   `json:"error,omitempty"`
	Details string   `json:"details,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Status  int      `json:"status,omitempty"`
	OK      bool     `json:"ok"`
}

// ErrorHandler renders handler errors as a Response.
// Errors that are not *internal.HTTPError become 500 Internal Server Error.
func ErrorHandler(c internal.Context, err error) error {
	code := http.StatusInternalServerError
	resp := Response{Error: http.StatusText(code)}

	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		code = httpErr.StatusCode()
		resp.Error = httpErr.Message
		for name, value := range httpErr.Headers {
			c.SetHeader(name, value)
		}
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		resp.Missing = cfgErr.Missing
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		resp.Status = provErr.Status
		resp.Details = provErr.Details
	}

	if code >= http.StatusInternalServerError && cfgErr == nil && provErr == nil && !errors.Is(err, ErrProviderUnreachable) {
		c.LogError("request failed", "error", err)
	}

	return c.JSON(code, resp)
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(internal.Context) error {
	return internal.ErrNotFound(msgNotFound)
}
