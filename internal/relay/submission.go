package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// MaxBodyBytes is the largest request body the relay reads.
const MaxBodyBytes = 64 << 10

var (
	// ErrInvalidJSON is returned for bodies that are not a JSON object with
	// string fields, or that exceed MaxBodyBytes.
	ErrInvalidJSON = errors.New("relay: invalid json")

	// ErrMissingFields is returned when a required field is blank.
	ErrMissingFields = errors.New("relay: missing required fields")
)

// Submission is one contact form message. It is never persisted.
type Submission struct {
	ID      string `json:"-"`
	Name    string `json:"from_name"`
	Email   string `json:"from_email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	// Website is the honeypot field; humans never see it.
	Website string `json:"website"`
}

// DecodeSubmission reads at most MaxBodyBytes from r and decodes a JSON
// object. An empty body decodes to a zero Submission. Known fields must be
// strings or null; unknown fields are ignored. The result is trimmed.
func DecodeSubmission(r io.Reader) (Submission, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return Submission{}, errors.Join(ErrInvalidJSON, err)
	}
	if len(raw) > MaxBodyBytes {
		return Submission{}, ErrInvalidJSON
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Submission{}, nil
	}
	if raw[0] != '{' {
		return Submission{}, ErrInvalidJSON
	}

	var s Submission
	if err := json.Unmarshal(raw, &s); err != nil {
		return Submission{}, errors.Join(ErrInvalidJSON, err)
	}
	return s.Normalize(), nil
}

// Normalize returns a copy with surrounding whitespace removed from every field.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Message = strings.TrimSpace(s.Message)
	s.Website = strings.TrimSpace(s.Website)
	return s
}

// IsSpam reports whether the honeypot field was filled in.
func (s Submission) IsSpam() bool {
	return strings.TrimSpace(s.Website) != ""
}

// Validate checks that name, email and message are present.
// The email format is deliberately not checked.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" ||
		strings.TrimSpace(s.Email) == "" ||
		strings.TrimSpace(s.Message) == "" {
		return ErrMissingFields
	}
	return nil
}
