package cli

import (
	"context"

	"github.com/spf13/cobra"

	smsaero "github.com/smsaero/smsaero-go"
)

func (a *app) newBlacklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Manage the blacklist",
	}

	var addPhones []int64
	add := &cobra.Command{
		Use:   "add",
		Short: "Add numbers to the blacklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				entry, err := c.BlacklistAdd(ctx, addPhones)
				if err != nil {
					return err
				}
				return a.printJSON(entry)
			})
		},
	}
	add.Flags().Int64SliceVar(&addPhones, "phone", nil, "phone number (repeatable)")
	_ = add.MarkFlagRequired("phone")

	var deleteID int64
	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove an entry from the blacklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				if err := c.BlacklistDelete(ctx, deleteID); err != nil {
					return err
				}
				return a.printOK()
			})
		},
	}
	del.Flags().Int64Var(&deleteID, "id", 0, "blacklist entry id")
	_ = del.MarkFlagRequired("id")

	var (
		listPhones []int64
		page       int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List blacklisted numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				entries, err := c.BlacklistList(ctx, listPhones, page)
				if err != nil {
					return err
				}
				return a.printJSON(entries)
			})
		},
	}
	list.Flags().Int64SliceVar(&listPhones, "phone", nil, "filter by phone number (repeatable)")
	list.Flags().IntVar(&page, "page", 0, "page number")

	cmd.AddCommand(add, del, list)
	return cmd
}
