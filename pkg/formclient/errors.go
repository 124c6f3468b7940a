package formclient

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSubmitInProgress is returned when Submit is called while a previous
// submission from the same client has not settled.
var ErrSubmitInProgress = errors.New("formclient: submission already in progress")

// SubmitError describes a failed submission. It is for developers; visitors
// only see Messages.Failure.
type SubmitError struct {
	Err        error
	Message    string
	Missing    []string
	StatusCode int
}

func (e *SubmitError) Error() string {
	var b strings.Builder
	b.WriteString("formclient: submit failed")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if len(e.Missing) > 0 {
		b.WriteString(" (missing " + strings.Join(e.Missing, ", ") + ")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
