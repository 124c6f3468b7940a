package mailer

import "context"

// Sender is an email provider backend. Email arrives fully rendered.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc lets a plain function act as a Sender.
type SenderFunc func(ctx context.Context, email *Email) error

func (f SenderFunc) Send(ctx context.Context, email *Email) error { return f(ctx, email) }
