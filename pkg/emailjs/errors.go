package emailjs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned by Send when required credentials are empty.
	ErrNotConfigured = errors.New("emailjs: not configured")

	// ErrUnreachable wraps transport failures: DNS, connect, TLS, timeouts and
	// cancellations before a response was received.
	ErrUnreachable = errors.New("emailjs: unreachable")
)

// APIError is returned when EmailJS answers with a non-2xx status.
type APIError struct {
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("emailjs: status %d: %s", e.StatusCode, e.Body)
}
