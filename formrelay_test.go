package formrelay_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay"
	"github.com/dmitrymomot/formrelay/internal/config"
	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/pkg/emailjs"
)

const validBody = `{"from_name":"Jane","from_email":"jane@example.com","phone":"+1 555 0100","message":"Hello there","website":""}`

// upstreamStub stands in for an email provider API.
type upstreamStub struct {
	server *httptest.Server
	calls  atomic.Int32
	mu     sync.Mutex
	last   map[string]any
	path   string
}

func newUpstream(t *testing.T, status int, body string) *upstreamStub {
	t.Helper()
	u := &upstreamStub{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		var got map[string]any
		_ = json.NewDecoder(r.Body).Decode(&got)
		u.mu.Lock()
		u.last = got
		u.path = r.URL.Path
		u.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstreamStub) lastBody() map[string]any {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.last
}

func (u *upstreamStub) lastPath() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.path
}

func emailJSConfig(endpoint string) *config.Config {
	cfg := config.Default()
	cfg.EmailJS = emailjs.Config{
		ServiceID:  "service_1",
		TemplateID: "template_1",
		PublicKey:  "public_1",
		Endpoint:   endpoint,
	}
	return cfg
}

func post(t *testing.T, h http.Handler, path, origin, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
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

func TestNew_EmailJSRelay(t *testing.T) {
	t.Parallel()

	upstream := newUpstream(t, http.StatusOK, "OK")
	cfg := emailJSConfig(upstream.server.URL)
	cfg.AllowedOrigins = []string{"https://site.example"}

	app, err := formrelay.New(cfg)
	require.NoError(t, err)

	for _, path := range []string{relay.DefaultPath, relay.LegacyPath} {
		t.Run(path, func(t *testing.T) {
			rec, resp := post(t, app, path, "https://site.example", validBody)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, true, resp["ok"])
			assert.Equal(t, "https://site.example", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

			got := upstream.lastBody()
			assert.Equal(t, "service_1", got["service_id"])
			assert.Equal(t, "template_1", got["template_id"])
			assert.Equal(t, "public_1", got["user_id"])
			assert.NotContains(t, got, "accessToken")
			assert.Equal(t, map[string]any{
				"from_name":  "Jane",
				"from_email": "jane@example.com",
				"phone":      "+1 555 0100",
				"message":    "Hello there",
			}, got["template_params"])
		})
	}
	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestNew_ForbiddenOrigin(t *testing.T) {
	t.Parallel()

	upstream := newUpstream(t, http.StatusOK, "OK")
	cfg := emailJSConfig(upstream.server.URL)
	cfg.AllowedOrigins = []string{"https://site.example"}

	app, err := formrelay.New(cfg)
	require.NoError(t, err)

	rec, resp := post(t, app, relay.DefaultPath, "https://evil.example", validBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", resp["error"])
	assert.Equal(t, int32(0), upstream.calls.Load())
}

func TestNew_UpstreamRejects(t *testing.T) {
	t.Parallel()

	upstream := newUpstream(t, http.StatusBadRequest, "The template ID is invalid")
	app, err := formrelay.New(emailJSConfig(upstream.server.URL))
	require.NoError(t, err)

	rec, resp := post(t, app, relay.DefaultPath, "", validBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Email provider error", resp["error"])
	assert.Equal(t, float64(http.StatusBadRequest), resp["status"])
	assert.Equal(t, "The template ID is invalid", resp["details"])
	assert.Equal(t, false, resp["ok"])
}

func TestNew_NotConfigured(t *testing.T) {
	t.Parallel()

	upstream := newUpstream(t, http.StatusOK, "OK")
	cfg := config.Default()
	cfg.EmailJS.Endpoint = upstream.server.URL

	app, err := formrelay.New(cfg)
	require.NoError(t, err)

	rec, resp := post(t, app, relay.DefaultPath, "", validBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Email service is not configured", resp["error"])
	assert.Equal(t, []any{"EMAILJS_SERVICE_ID", "EMAILJS_TEMPLATE_ID", "EMAILJS_PUBLIC_KEY"}, resp["missing"])
	assert.Equal(t, int32(0), upstream.calls.Load())

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	hrec := httptest.NewRecorder()
	app.ServeHTTP(hrec, req)
	assert.Equal(t, http.StatusServiceUnavailable, hrec.Code)
}

func TestNew_Health(t *testing.T) {
	t.Parallel()

	app, err := formrelay.New(emailJSConfig("http://127.0.0.1:1"))
	require.NoError(t, err)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestNew_ResendRelay(t *testing.T) {
	t.Parallel()

	upstream := newUpstream(t, http.StatusOK, `{"id":"email_1"}`)
	cfg := config.Default()
	cfg.Provider = relay.ProviderResend
	cfg.ContactRecipient = "owner@site.example"
	cfg.Resend.APIKey = "re_test"
	cfg.Resend.SenderEmail = "noreply@site.example"
	cfg.Resend.BaseURL = upstream.server.URL

	app, err := formrelay.New(cfg)
	require.NoError(t, err)

	body := `{"from_name":"<b>Jane</b>","from_email":"jane@example.com","phone":"","message":"Hi **there** <script>alert(1)</script>"}`
	rec, resp := post(t, app, relay.DefaultPath, "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, resp["ok"])

	got := upstream.lastBody()
	assert.Equal(t, "/emails", upstream.lastPath())
	assert.Equal(t, []any{"owner@site.example"}, got["to"])
	assert.Equal(t, "New message from Jane", got["subject"])
	assert.Equal(t, "jane@example.com", got["reply_to"])
	html, _ := got["html"].(string)
	assert.Contains(t, html, "<strong>there</strong>")
	assert.NotContains(t, html, "<script>")
}

func TestNew_ResendMissingRecipient(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Provider = relay.ProviderResend
	cfg.Resend.APIKey = "re_test"
	cfg.Resend.SenderEmail = "noreply@site.example"

	app, err := formrelay.New(cfg)
	require.NoError(t, err)

	rec, resp := post(t, app, relay.DefaultPath, "", validBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, []any{"CONTACT_RECIPIENT"}, resp["missing"])
}

func TestNew_UnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Provider = "carrier-pigeon"

	_, err := formrelay.New(cfg)
	require.ErrorIs(t, err, config.ErrUnknownProvider)
}

func TestNew_WithSender(t *testing.T) {
	t.Parallel()

	var got []formrelay.Submission
	sender := &funcSender{send: func(sub formrelay.Submission) { got = append(got, sub) }}

	app, err := formrelay.New(config.Default(), formrelay.WithSender(sender))
	require.NoError(t, err)

	rec, _ := post(t, app, relay.DefaultPath, "", validBody)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane", got[0].Name)
	assert.NotEmpty(t, got[0].ID)
}

func TestNew_PublicDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Contact us</h1>"), 0o600))

	cfg := emailJSConfig("http://127.0.0.1:1")
	cfg.PublicDir = dir

	app, err := formrelay.New(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Contact us")

	// The relay path is still answered by the relay.
	req = httptest.NewRequest(http.MethodGet, relay.DefaultPath, nil)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))

	cfg.PublicDir = filepath.Join(dir, "missing")
	_, err = formrelay.New(cfg)
	require.Error(t, err)
}

func TestNew_OpenCORSWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newTestLogger(&buf)

	_, err := formrelay.New(emailJSConfig("http://127.0.0.1:1"), formrelay.WithLogger(log))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ALLOWED_ORIGIN is not set")
}
