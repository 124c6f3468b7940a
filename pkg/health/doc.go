// Package health provides HTTP handlers for health probes.
//
// [LivenessHandler] always answers OK while the process is running.
// [ReadinessHandler] executes a set of [Checks] in parallel and answers
// 503 when any of them fails.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "provider": relayHandler.ProviderCheck(),
//	}, health.WithLogger(log)))
//
// By default, handlers respond with plain text for compatibility with probes.
// Request JSON by setting Accept: application/json header or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "provider": {"status": "unhealthy", "error": "missing EMAILJS_SERVICE_ID"}
//	  }
//	}
//
// [Run] executes the same checks outside of HTTP and returns an error
// wrapping [ErrCheckFailed] when any fails.
package health
