package internal

// Handler is anything that registers routes, typically a struct holding the
// dependencies its endpoints need:
//
//	func (h *ContactHandler) Routes(r internal.Router) {
//	    r.OPTIONS("/api/contact", h.preflight)
//	    r.POST("/api/contact", h.send)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves a request. A returned error goes to the App's
// ErrorHandler unless the response was already written.
type HandlerFunc func(c Context) error

// Middleware decorates a HandlerFunc. It may stop the chain by returning an
// error or writing a response without calling next:
//
//	func RequireJSON(next internal.HandlerFunc) internal.HandlerFunc {
//	    return func(c internal.Context) error {
//	        if !strings.HasPrefix(c.Header("Content-Type"), "application/json") {
//	            return internal.ErrBadRequest("JSON expected")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders an error returned by a handler or middleware.
type ErrorHandler func(Context, error) error
