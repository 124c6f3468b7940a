package relay_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/internal/relay"
)

func TestDecodeSubmission(t *testing.T) {
	t.Parallel()

	t.Run("trims fields", func(t *testing.T) {
		t.Parallel()
		s, err := relay.DecodeSubmission(strings.NewReader(
			`{"from_name":"  Ann ","from_email":" a@x.com","phone":" 555 ","message":"\thi\n","website":"  ","extra":1}`))
		require.NoError(t, err)
		assert.Equal(t, relay.Submission{Name: "Ann", Email: "a@x.com", Phone: "555", Message: "hi"}, s)
	})

	t.Run("empty body is empty object", func(t *testing.T) {
		t.Parallel()
		s, err := relay.DecodeSubmission(strings.NewReader("  \n"))
		require.NoError(t, err)
		assert.Equal(t, relay.Submission{}, s)
	})

	t.Run("null fields are empty", func(t *testing.T) {
		t.Parallel()
		s, err := relay.DecodeSubmission(strings.NewReader(`{"phone":null}`))
		require.NoError(t, err)
		assert.Empty(t, s.Phone)
	})

	invalid := map[string]string{
		"malformed":        `{"from_name":`,
		"array":            `[]`,
		"string":           `"hello"`,
		"null":             `null`,
		"number field":     `{"from_name":5}`,
		"object field":     `{"message":{"text":"hi"}}`,
		"trailing garbage": `{} x`,
		"too large":        `{"message":"` + strings.Repeat("a", relay.MaxBodyBytes) + `"}`,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := relay.DecodeSubmission(strings.NewReader(body))
			require.ErrorIs(t, err, relay.ErrInvalidJSON)
		})
	}
}

func TestSubmission_Validate(t *testing.T) {
	t.Parallel()

	valid := relay.Submission{Name: "A", Email: "a@x.com", Message: "hi"}
	require.NoError(t, valid.Validate())

	for _, s := range []relay.Submission{
		{Email: "a@x.com", Message: "hi"},
		{Name: "A", Message: "hi"},
		{Name: "A", Email: "a@x.com"},
		{Name: "   ", Email: "a@x.com", Message: "hi"},
		{Name: "A", Email: "a@x.com", Message: "\n\t"},
	} {
		require.ErrorIs(t, s.Validate(), relay.ErrMissingFields)
	}

	assert.Empty(t, relay.Submission{Name: "A", Email: "not-an-email", Message: "hi"}.Validate())
}

func TestSubmission_IsSpam(t *testing.T) {
	t.Parallel()

	assert.False(t, relay.Submission{}.IsSpam())
	assert.False(t, relay.Submission{Website: "   "}.IsSpam())
	assert.True(t, relay.Submission{Website: "spammer"}.IsSpam())
}
