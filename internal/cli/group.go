package cli

import (
	"context"

	"github.com/spf13/cobra"

	smsaero "github.com/smsaero/smsaero-go"
)

func (a *app) newGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage contact groups",
	}

	var name string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a contact group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				g, err := c.GroupAdd(ctx, name)
				if err != nil {
					return err
				}
				return a.printJSON(g)
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "group name")
	_ = add.MarkFlagRequired("name")

	var deleteID int64
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a contact group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				if err := c.GroupDelete(ctx, deleteID); err != nil {
					return err
				}
				return a.printOK()
			})
		},
	}
	del.Flags().Int64Var(&deleteID, "id", 0, "group id")
	_ = del.MarkFlagRequired("id")

	delAll := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every contact group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				if err := c.GroupDeleteAll(ctx); err != nil {
					return err
				}
				return a.printOK()
			})
		},
	}

	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List contact groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				groups, err := c.GroupList(ctx, page)
				if err != nil {
					return err
				}
				return a.printJSON(groups)
			})
		},
	}
	list.Flags().IntVar(&page, "page", 0, "page number")

	cmd.AddCommand(add, del, delAll, list)
	return cmd
}
