package formrelay_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/formrelay"
	"github.com/dmitrymomot/formrelay/pkg/logger"
)

type funcSender struct {
	send func(formrelay.Submission)
}

func (s *funcSender) Name() string      { return "func" }
func (s *funcSender) Missing() []string { return nil }

func (s *funcSender) Send(_ context.Context, sub formrelay.Submission) error {
	s.send(sub)
	return nil
}

func newTestLogger(w io.Writer) *slog.Logger {
	return logger.NewWithConfig(logger.Config{Format: logger.FormatText, Level: "debug"}, w)
}
