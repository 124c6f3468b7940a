package mailer

import "fmt"

// Tags are provider labels attached to a message, e.g. {"source": "contact-form"}.
type Tags map[string]string

// Recipient renders "Name <email>", or the bare address when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a rendered message handed to a Sender.
type Email struct {
	Headers map[string]string
	Tags    Tags
	// From overrides the sender's default From address.
	From    string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	To      []string
}
