// Package emailjs is a minimal client for the EmailJS send API.
//
//	client := emailjs.New(emailjs.Config{
//		ServiceID:  "service_x",
//		TemplateID: "template_y",
//		PublicKey:  "public_z",
//	}, emailjs.WithTimeout(10*time.Second))
//
//	err := client.Send(ctx, emailjs.TemplateParams{
//		FromName:  "Jane",
//		FromEmail: "jane@example.com",
//		Message:   "Hello",
//	})
//
// Each Send is a single POST; there are no retries. Failures are either an
// *APIError carrying the upstream status and body, or an error wrapping
// ErrUnreachable when no response was received.
package emailjs
