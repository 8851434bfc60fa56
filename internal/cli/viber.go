package cli

import (
	"context"

	"github.com/spf13/cobra"

	smsaero "github.com/smsaero/smsaero-go"
)

func (a *app) newViberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viber",
		Short: "Viber messaging",
	}

	var params smsaero.ViberSendParams
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a Viber message",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				msg, err := c.ViberSend(ctx, params)
				if err != nil {
					return err
				}
				return a.printJSON(msg)
			})
		},
	}
	send.Flags().StringVar(&params.Sign, "sign", "", "sender signature")
	send.Flags().StringVar(&params.Channel, "channel", "", "sending channel")
	send.Flags().StringVar(&params.Text, "message", "", "message text")
	send.Flags().Int64SliceVar(&params.Phones, "phone", nil, "recipient phone number (repeatable)")
	send.Flags().Int64Var(&params.GroupID, "group_id", 0, "send to a whole contact group")
	send.Flags().StringVar(&params.ImageSource, "image", "", "image URL to attach")
	send.Flags().StringVar(&params.TextButton, "button-text", "", "button caption")
	send.Flags().StringVar(&params.LinkButton, "button-link", "", "button target URL")
	_ = send.MarkFlagRequired("sign")
	_ = send.MarkFlagRequired("channel")
	_ = send.MarkFlagRequired("message")

	signs := &cobra.Command{
		Use:   "signs",
		Short: "List Viber sender signatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				result, err := c.ViberSignList(ctx)
				if err != nil {
					return err
				}
				return a.printJSON(result)
			})
		},
	}

	var listPage int
	list := &cobra.Command{
		Use:   "list",
		Short: "List Viber sendings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				result, err := c.ViberList(ctx, listPage)
				if err != nil {
					return err
				}
				return a.printJSON(result)
			})
		},
	}
	list.Flags().IntVar(&listPage, "page", 0, "page number")

	var (
		sendingID int64
		statsPage int
	)
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show per-recipient statistics for a sending",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				result, err := c.ViberStatistics(ctx, sendingID, statsPage)
				if err != nil {
					return err
				}
				return a.printJSON(result)
			})
		},
	}
	stats.Flags().Int64Var(&sendingID, "id", 0, "sending id")
	stats.Flags().IntVar(&statsPage, "page", 0, "page number")
	_ = stats.MarkFlagRequired("id")

	cmd.AddCommand(send, signs, list, stats)
	return cmd
}
