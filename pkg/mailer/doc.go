// Package mailer sends templated email through a pluggable provider.
//
// Sending is split from rendering so providers can be swapped while the
// templates stay the same:
//
//   - Sender: interface that email providers implement
//   - Renderer: converts markdown templates with YAML frontmatter to HTML
//   - Mailer: combines a Sender and a Renderer
//
// # Usage
//
//	sender := resend.New(resend.Config{
//		APIKey:      os.Getenv("RESEND_API_KEY"),
//		SenderEmail: "noreply@example.com",
//		SenderName:  "Website",
//	})
//	renderer := mailer.NewRendererWithConfig(templates.FS, mailer.RendererConfig{
//		Sanitize: sanitizer.SanitizeHTML,
//	})
//	m := mailer.New(sender, renderer, mailer.DefaultConfig())
//
//	err := m.Send(ctx, mailer.SendParams{
//		To:       "owner@example.com",
//		Template: "contact.md",
//		ReplyTo:  visitorEmail,
//		Data:     submission,
//	})
//
// # Templates
//
// Templates are markdown with optional YAML frontmatter. The Subject key is
// itself a text/template executed against the same data:
//
//	---
//	Subject: New message from {{.Name}}
//	---
//	**{{.Name}}** ({{.Email}}) wrote:
//
//	{{.Message}}
//
// The rendered markdown is converted with goldmark, passed through
// RendererConfig.Sanitize and placed into the layout as {{.Content}}. Raw HTML
// in templates or data is dropped by goldmark. The processed markdown doubles
// as the plain text alternative.
package mailer
