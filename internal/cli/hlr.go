package cli

import (
	"context"

	"github.com/spf13/cobra"

	smsaero "github.com/smsaero/smsaero-go"
)

func (a *app) newHLRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hlr",
		Short: "Home Location Register lookups",
	}

	var checkPhones []int64
	check := &cobra.Command{
		Use:   "check",
		Short: "Start an HLR lookup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				r, err := c.HLRCheck(ctx, checkPhones)
				if err != nil {
					return err
				}
				return a.printJSON(r)
			})
		},
	}
	check.Flags().Int64SliceVar(&checkPhones, "phone", nil, "phone number (repeatable)")
	_ = check.MarkFlagRequired("phone")

	var statusID int64
	status := &cobra.Command{
		Use:   "status",
		Short: "Show the outcome of an HLR lookup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				r, err := c.HLRStatus(ctx, statusID)
				if err != nil {
					return err
				}
				return a.printJSON(r)
			})
		},
	}
	status.Flags().Int64Var(&statusID, "id", 0, "lookup id")
	_ = status.MarkFlagRequired("id")

	cmd.AddCommand(check, status)
	return cmd
}

func (a *app) newOperatorCmd() *cobra.Command {
	var phones []int64

	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Identify the operator serving a number",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				info, err := c.NumberOperator(ctx, phones)
				if err != nil {
					return err
				}
				return a.printJSON(info)
			})
		},
	}
	cmd.Flags().Int64SliceVar(&phones, "phone", nil, "phone number (repeatable)")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}
