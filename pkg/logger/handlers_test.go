package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("transport down") }

func TestFanoutHandler(t *testing.T) {
	t.Parallel()

	var info, errOnly bytes.Buffer
	h := fanoutHandler{
		failingHandler{slog.NewTextHandler(&bytes.Buffer{}, nil)},
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errOnly, &slog.HandlerOptions{Level: slog.LevelError}),
	}

	log := slog.New(h.WithAttrs([]slog.Attr{slog.String("app", "formrelay")}))
	log.Info("submission relayed")

	assert.Contains(t, info.String(), "submission relayed")
	assert.Contains(t, info.String(), `"app":"formrelay"`)
	assert.Empty(t, errOnly.String())

	rec := slog.NewRecord(time.Time{}, slog.LevelError, "provider down", 0)
	err := h.Handle(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, errOnly.String(), "provider down")

	assert.False(t, fanoutHandler{slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelError})}.
		Enabled(context.Background(), slog.LevelInfo))
}

func TestWithExtractors(t *testing.T) {
	t.Parallel()

	type key struct{}
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)

	assert.Equal(t, base, withExtractors(base, []ContextExtractor{nil}))

	h := withExtractors(base, []ContextExtractor{func(ctx context.Context) (slog.Attr, bool) {
		v, ok := ctx.Value(key{}).(string)
		return slog.String("submission_id", v), ok
	}})
	log := slog.New(h).WithGroup("relay")

	log.InfoContext(context.WithValue(context.Background(), key{}, "sub-1"), "sent")
	assert.Contains(t, buf.String(), "sub-1")

	buf.Reset()
	log.InfoContext(context.Background(), "sent")
	assert.NotContains(t, buf.String(), "submission_id")
}
