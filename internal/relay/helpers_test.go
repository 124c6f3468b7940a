package relay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/middlewares"
)

// stubSender records calls and returns a canned error.
type stubSender struct {
	err     error
	missing []string
	calls   []relay.Submission
	mu      sync.Mutex
}

func (s *stubSender) Name() string      { return "stub" }
func (s *stubSender) Missing() []string { return s.missing }

func (s *stubSender) Send(_ context.Context, sub relay.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sub)
	return s.err
}

func (s *stubSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestApp(sender relay.Sender, opts relay.Options) *internal.App {
	h := relay.NewHandler(sender, opts)
	return internal.New(
		internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
		internal.WithHandlers(h),
		internal.WithErrorHandler(relay.ErrorHandler),
		internal.WithMethodNotAllowedHandler(h.MethodNotAllowed),
		internal.WithNotFoundHandler(relay.NotFound),
	)
}

func do(t *testing.T, h http.Handler, method, path, origin, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

const validBody = `{"from_name":"A","from_email":"a@x.com","phone":"","message":"hi","website":""}`
