// Package relay implements the contact form relay endpoint.
//
// A browser posts a JSON submission to the relay path. The handler authorizes
// the origin, checks that the email provider is configured, decodes and
// validates the payload, drops honeypot spam and forwards the message to the
// provider with exactly one upstream call. Every answer is a JSON object with
// an "ok" flag:
//
//	{"ok":true}
//	{"ok":false,"error":"Missing required fields"}
//	{"ok":false,"error":"Email service is not configured","missing":["EMAILJS_SERVICE_ID"]}
//	{"ok":false,"error":"Email provider error","status":400,"details":"..."}
//
// Providers implement Sender. EmailJSSender wraps pkg/emailjs and
// MailerSender renders the embedded contact template through pkg/mailer.
package relay
