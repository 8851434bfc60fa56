package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/smsaero/smsaero-go/internal/callback"
)

func (a *app) newListenCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Run a local listener for delivery-status callbacks",
		Long: "Runs a small HTTP server that accepts SmsAero delivery-status " +
			"callbacks and prints each one as JSON. Point --callback-url at it " +
			"when sending.",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := callback.New(addr, a.log, func(cb callback.StatusCallback) {
				_ = a.printJSON(cb)
			})

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()
			a.log.WithField("addr", addr).Info("listening for callbacks")

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8099", "listen address")
	return cmd
}
