package cli

import (
	"context"

	"github.com/spf13/cobra"

	smsaero "github.com/smsaero/smsaero-go"
)

func (a *app) newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage address-book contacts",
	}

	var (
		phone  int64
		params smsaero.ContactParams
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				ct, err := c.ContactAdd(ctx, phone, &params)
				if err != nil {
					return err
				}
				return a.printJSON(ct)
			})
		},
	}
	add.Flags().Int64Var(&phone, "phone", 0, "contact phone number")
	add.Flags().Int64Var(&params.GroupID, "group_id", 0, "group to add the contact to")
	add.Flags().StringVar(&params.Birthday, "birthday", "", "contact birthday")
	add.Flags().StringVar(&params.Sex, "sex", "", "contact sex")
	add.Flags().StringVar(&params.LastName, "lname", "", "last name")
	add.Flags().StringVar(&params.FirstName, "fname", "", "first name")
	add.Flags().StringVar(&params.Surname, "sname", "", "surname")
	add.Flags().StringVar(&params.Param1, "param1", "", "custom parameter 1")
	add.Flags().StringVar(&params.Param2, "param2", "", "custom parameter 2")
	add.Flags().StringVar(&params.Param3, "param3", "", "custom parameter 3")
	_ = add.MarkFlagRequired("phone")

	var deleteID int64
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				if err := c.ContactDelete(ctx, deleteID); err != nil {
					return err
				}
				return a.printOK()
			})
		},
	}
	del.Flags().Int64Var(&deleteID, "id", 0, "contact id")
	_ = del.MarkFlagRequired("id")

	delAll := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				if err := c.ContactDeleteAll(ctx); err != nil {
					return err
				}
				return a.printOK()
			})
		},
	}

	var (
		filter smsaero.ContactFilter
		page   int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				contacts, err := c.ContactList(ctx, &filter, page)
				if err != nil {
					return err
				}
				return a.printJSON(contacts)
			})
		},
	}
	list.Flags().Int64Var(&filter.Phone, "phone", 0, "filter by phone number")
	list.Flags().Int64Var(&filter.GroupID, "group_id", 0, "filter by group")
	list.Flags().StringVar(&filter.Operator, "operator", "", "filter by operator")
	list.Flags().IntVar(&page, "page", 0, "page number")

	cmd.AddCommand(add, del, delAll, list)
	return cmd
}
