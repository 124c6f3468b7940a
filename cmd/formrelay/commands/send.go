package commands

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/pkg/formclient"
	"github.com/dmitrymomot/formrelay/pkg/logger"
)

// send: submit one form to a running relay, the way the page script does.
func sendCmd() *cobra.Command {
	var (
		endpoint string
		form     formclient.Form
		timeout  time.Duration
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit a contact form to a relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.NewNope()
			if verbose {
				log = logger.NewWithConfig(logger.Config{Format: logger.FormatText, Level: "debug"}, cmd.ErrOrStderr())
			}

			client := formclient.New(endpoint,
				formclient.WithNotifier(formclient.WriterNotifier{W: cmd.OutOrStdout()}),
				formclient.WithLogger(log),
				formclient.WithHTTPClient(&http.Client{Timeout: timeout}),
			)

			err := client.Submit(cmd.Context(), &form, nil)
			var subErr *formclient.SubmitError
			if errors.As(err, &subErr) {
				log.Debug("relay answered", slog.Int("status", subErr.StatusCode))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8080"+relay.DefaultPath, "relay URL")
	cmd.Flags().StringVar(&form.Name, "name", "", "sender name")
	cmd.Flags().StringVar(&form.Email, "email", "", "sender email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "sender phone")
	cmd.Flags().StringVar(&form.Message, "message", "", "message text")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log failure details to stderr")
	return cmd
}
