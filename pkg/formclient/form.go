package formclient

import (
	"strings"
	"sync"
)

// Form holds the field values of one contact form.
type Form struct {
	Name    string
	Email   string
	Phone   string
	Message string
	// Website is the honeypot; it stays empty for humans.
	Website string

	mu sync.Mutex
}

// Payload is the JSON body the relay accepts.
type Payload struct {
	Name    string `json:"from_name"`
	Email   string `json:"from_email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Website string `json:"website"`
}

// Reset clears every field.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Name, f.Email, f.Phone, f.Message, f.Website = "", "", "", "", ""
}

// IsSpam reports whether the honeypot field is filled in.
func (f *Form) IsSpam() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.TrimSpace(f.Website) != ""
}

// Payload snapshots the four submission fields. The honeypot is always sent
// empty since spam never reaches the network.
func (f *Form) Payload() Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Payload{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
	}
}
