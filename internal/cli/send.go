package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	smsaero "github.com/smsaero/smsaero-go"
)

func (a *app) newSendCmd() *cobra.Command {
	var (
		phones      []int64
		message     string
		sign        string
		callbackURL string
		date        string
		chunkSize   int
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an SMS to one or more numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				opts := smsaero.SendOptions{
					Sign:        sign,
					CallbackURL: callbackURL,
				}
				if date != "" {
					t, err := time.Parse(time.RFC3339, date)
					if err != nil {
						return fmt.Errorf("parse --date: %w", err)
					}
					opts.DateToSend = t
				}

				// With a chunk size set, large recipient lists are
				// split and dispatched concurrently.
				if chunkSize > 0 {
					results, err := c.SendBulk(ctx, phones, message, &smsaero.BulkOptions{
						SendOptions: opts,
						ChunkSize:   chunkSize,
						MaxWorkers:  workers,
					})
					if err != nil {
						return err
					}
					return a.printJSON(results)
				}

				msg, err := c.SendSMS(ctx, phones, message, &opts)
				if err != nil {
					return err
				}
				return a.printJSON(msg)
			})
		},
	}

	cmd.Flags().Int64SliceVar(&phones, "phone", nil, "recipient phone number (repeatable)")
	cmd.Flags().StringVar(&message, "message", "", "message text")
	cmd.Flags().StringVar(&sign, "sign", "", "sender signature override")
	cmd.Flags().StringVar(&callbackURL, "callback-url", "", "URL to receive delivery-status callbacks")
	cmd.Flags().StringVar(&date, "date", "", "schedule the message (RFC 3339)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "recipients per request when sending in bulk")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent requests when sending in bulk")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
