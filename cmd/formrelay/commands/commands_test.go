package commands_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/cmd/formrelay/commands"
	"github.com/dmitrymomot/formrelay/pkg/formclient"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := commands.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigCommand_MasksSecrets(t *testing.T) {
	t.Setenv("EMAILJS_PRIVATE_KEY", "priv_abcdefghijkl")
	t.Setenv("RESEND_API_KEY", "re_1234567890")
	t.Setenv("RELAY_PATH", "/contact")

	envFile := filepath.Join(t.TempDir(), "missing.env")
	out, err := run(t, "config", "--env-file", envFile)
	require.NoError(t, err)

	assert.Contains(t, out, "relay_path: /contact")
	assert.Contains(t, out, "priv****")
	assert.Contains(t, out, "re_1****")
	assert.NotContains(t, out, "priv_abcdefghijkl")
	assert.NotContains(t, out, "re_1234567890")
}

func TestConfigCommand_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formrelay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mail_provider: resend\n"), 0o600))

	out, err := run(t, "config", "--config", path, "--env-file", filepath.Join(dir, "none.env"))
	require.NoError(t, err)
	assert.Contains(t, out, "mail_provider: resend")
}

func TestConfigCommand_InvalidProvider(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "fax")

	_, err := run(t, "config", "--env-file", filepath.Join(t.TempDir(), "none.env"))
	require.Error(t, err)
}

func TestSendCommand(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		t.Cleanup(srv.Close)

		out, err := run(t, "send",
			"--endpoint", srv.URL,
			"--name", "Jane",
			"--email", "jane@example.com",
			"--message", "Hello",
		)
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
		assert.Contains(t, out, formclient.DefaultMessages().Success)
	})

	t.Run("failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"error":"Missing required fields"}`))
		}))
		t.Cleanup(srv.Close)

		out, err := run(t, "send", "--endpoint", srv.URL, "--verbose")
		require.Error(t, err)
		assert.Contains(t, out, formclient.DefaultMessages().Failure)
		assert.Contains(t, out, "Missing required fields")
	})
}
