// Package formclient submits contact forms to the relay endpoint.
//
// It mirrors what the page script does in the browser, which makes it useful
// for the send CLI command, smoke tests and server-rendered pages:
//
//	client := formclient.New("https://example.com/api/contact",
//		formclient.WithNotifier(formclient.WriterNotifier{W: os.Stdout}),
//		formclient.WithLogger(log),
//	)
//	form := &formclient.Form{Name: "Jane", Email: "jane@example.com", Message: "Hi"}
//	err := client.Submit(ctx, form, formclient.NewButton("Send"))
//
// Visitors only ever see Messages.Success or Messages.Failure. Diagnostic
// detail (status, relay error, missing configuration) is logged and returned
// as a *SubmitError.
package formclient
