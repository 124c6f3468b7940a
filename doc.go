// Package formrelay is a contact-form relay for static websites.
//
// A page posts its contact form as JSON to the relay endpoint. The relay
// checks the method and origin, drops honeypot spam, validates the fields
// and forwards the message to an email provider (EmailJS or Resend),
// keeping provider credentials on the server.
//
// # Quick Start
//
//	cfg, err := config.Load("formrelay.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	log := logger.NewWithConfig(cfg.Log, os.Stdout, middlewares.RequestIDExtractor())
//	app, err := formrelay.New(cfg, formrelay.WithLogger(log))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = app.Run(cfg.Address,
//	    formrelay.Logger(log),
//	    formrelay.ShutdownTimeout(cfg.ShutdownTimeout),
//	)
//
// # Endpoints
//
//	OPTIONS, POST  /api/contact                  relay (path set by RELAY_PATH)
//	OPTIONS, POST  /.netlify/functions/contact   same relay, legacy path
//	GET            /health/live                  liveness
//	GET            /health/ready                 provider configuration check
//	GET            /*                            static files when PUBLIC_DIR is set
//
// # Responses
//
// Success is {"ok":true}. Failures are {"ok":false,"error":"..."} with
// optional "details", "status" and "missing" fields. Spam caught by the
// honeypot is answered exactly like a success.
package formrelay
