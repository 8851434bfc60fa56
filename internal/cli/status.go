package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	smsaero "github.com/smsaero/smsaero-go"
)

func (a *app) newStatusCmd() *cobra.Command {
	var (
		id       int64
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the delivery status of a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				var (
					msg *smsaero.Message
					err error
				)
				if watch {
					msg, err = c.WaitForStatus(ctx, id, interval)
				} else {
					msg, err = c.SMSStatus(ctx, id)
				}
				if err != nil {
					return err
				}
				return a.printJSON(msg)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "message id")
	cmd.Flags().BoolVar(&watch, "watch", false, "poll until the message reaches a terminal status")
	cmd.Flags().DurationVar(&interval, "interval", smsaero.DefaultWatchInterval, "poll interval used with --watch")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	var (
		phones []int64
		text   string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sent messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				var filter *smsaero.SMSListFilter
				if len(phones) > 0 || text != "" {
					filter = &smsaero.SMSListFilter{Phones: phones, Text: text}
				}
				result, err := c.SMSList(ctx, filter, page)
				if err != nil {
					return err
				}
				return a.printJSON(result)
			})
		},
	}

	cmd.Flags().Int64SliceVar(&phones, "phone", nil, "filter by recipient number (repeatable)")
	cmd.Flags().StringVar(&text, "text", "", "filter by message text")
	cmd.Flags().IntVar(&page, "page", 0, "page number")

	return cmd
}
