package relay

import (
	"context"
	"errors"
	"fmt"
)

// maxDetails caps upstream error details echoed to the client, in runes.
const maxDetails = 500

// ErrProviderUnreachable means no response was received from the provider.
var ErrProviderUnreachable = errors.New("relay: email provider unreachable")

// Sender delivers one submission to an email provider.
type Sender interface {
	// Name identifies the provider in logs and health output.
	Name() string

	// Missing lists required settings that are not configured.
	Missing() []string

	// Send makes a single delivery attempt. Failures are *ProviderError when
	// the provider answered, or wrap ErrProviderUnreachable.
	Send(ctx context.Context, s Submission) error
}

// ProviderError is a non-2xx answer from the provider.
// Status is zero when the provider SDK does not expose it.
type ProviderError struct {
	Provider string
	Details  string
	Status   int
}

// NewProviderError builds a ProviderError with details cut to 500 runes.
func NewProviderError(provider string, status int, details string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Status:   status,
		Details:  truncate(details, maxDetails),
	}
}

func (e *ProviderError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: provider error: %s", e.Provider, e.Details)
	}
	return fmt.Sprintf("%s: provider error %d: %s", e.Provider, e.Status, e.Details)
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
