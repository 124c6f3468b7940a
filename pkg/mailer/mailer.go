package mailer

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New builds a Mailer. Empty cfg fields take the DefaultConfig values.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	def := DefaultConfig()
	cfg.FallbackSubject = cmp.Or(cfg.FallbackSubject, def.FallbackSubject)
	cfg.DefaultLayout = cmp.Or(cfg.DefaultLayout, def.DefaultLayout)
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes one templated message.
type SendParams struct {
	Data     any
	Tags     Tags
	To       string
	Template string // e.g. "contact.md"

	Subject string // overrides the template's Subject
	Layout  string // overrides Config.DefaultLayout
	From    string
	ReplyTo string
}

// Send renders params.Template and sends it. The subject is the first
// non-empty of params.Subject, the template's Subject front matter and
// Config.FallbackSubject, and is itself executed as a template with
// params.Data.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	result, err := m.renderer.Render(cmp.Or(params.Layout, m.config.DefaultLayout), params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	metaSubject, _ := result.Metadata["Subject"].(string)
	subject, err := executeSubject(cmp.Or(params.Subject, metaSubject, m.config.FallbackSubject), params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	err = m.sender.Send(ctx, &Email{
		To:      []string{params.To},
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		Tags:    params.Tags,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
