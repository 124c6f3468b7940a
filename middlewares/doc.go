// Package middlewares provides HTTP middleware for the relay server.
//
// # Request ID
//
// RequestID assigns an ID to each request. Upstream IDs from X-Request-ID,
// X-Correlation-ID or the hosting platform's X-Nf-Request-Id are reused;
// otherwise a UUID is generated. Pair it with RequestIDExtractor so every log
// line carries request_id:
//
//	log := logger.NewWithConfig(cfg.Log, os.Stdout, middlewares.RequestIDExtractor())
//	app := internal.New(
//	    internal.WithCustomLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics into a 500 *internal.HTTPError wrapping a *PanicError
// so the error handler still renders a JSON body.
//
// # Request logging
//
// RequestLogger writes one structured line per request with method, path,
// status, response size and duration.
//
// # CORS
//
// CORS writes Access-Control-Allow-Origin on every response and answers
// preflight requests with 204. With an allow-list the request origin is
// echoed when listed and the first entry is used otherwise. Without one, the
// request origin (or "*") is echoed. WithEnforceOrigin rejects listed-policy
// mismatches with 403 Forbidden; preflights are never rejected.
//
//	r.Group(func(r internal.Router) {
//	    r.Use(middlewares.CORS(
//	        middlewares.WithAllowOrigins("https://example.com"),
//	        middlewares.WithEnforceOrigin(),
//	    ))
//	    r.OPTIONS("/api/contact", preflight)
//	    r.POST("/api/contact", send)
//	})
package middlewares
