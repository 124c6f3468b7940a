package formclient

import (
	"fmt"
	"io"
)

// Messages are the texts shown to the visitor.
type Messages struct {
	Success string
	Failure string
	// Sending replaces the button label while a request is in flight.
	Sending string
	// DefaultLabel restores a button whose original label was empty.
	DefaultLabel string
}

// DefaultMessages returns the stock English texts.
func DefaultMessages() Messages {
	return Messages{
		Success:      "Message sent successfully. We will contact you soon.",
		Failure:      "Failed to send message. Please try again later or contact us by phone/email.",
		Sending:      "Sending...",
		DefaultLabel: "Submit",
	}
}

// Notifier surfaces user-facing messages.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// WriterNotifier prints messages, one per line.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Success(msg string) { _, _ = fmt.Fprintln(n.W, msg) }
func (n WriterNotifier) Failure(msg string) { _, _ = fmt.Fprintln(n.W, msg) }

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Failure(string) {}
