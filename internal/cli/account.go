package cli

import (
	"context"

	"github.com/spf13/cobra"

	smsaero "github.com/smsaero/smsaero-go"
)

func (a *app) newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the account balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				b, err := c.Balance(ctx)
				if err != nil {
					return err
				}
				return a.printJSON(b)
			})
		},
	}

	var (
		sum    float64
		cardID int64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Top up the balance from a stored card",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				r, err := c.BalanceAdd(ctx, sum, cardID)
				if err != nil {
					return err
				}
				return a.printJSON(r)
			})
		},
	}
	add.Flags().Float64Var(&sum, "sum", 0, "amount to add")
	add.Flags().Int64Var(&cardID, "card_id", 0, "stored card id")
	_ = add.MarkFlagRequired("sum")
	_ = add.MarkFlagRequired("card_id")

	cmd.AddCommand(add)
	return cmd
}

func (a *app) newCardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List stored payment cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				cards, err := c.Cards(ctx)
				if err != nil {
					return err
				}
				return a.printJSON(cards)
			})
		},
	}
}

func (a *app) newTariffsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tariffs",
		Short: "Show per-operator pricing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				t, err := c.Tariffs(ctx)
				if err != nil {
					return err
				}
				return a.printJSON(t)
			})
		},
	}
}

func (a *app) newSignsCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "signs",
		Short: "List registered sender signatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				signs, err := c.SignList(ctx, page)
				if err != nil {
					return err
				}
				return a.printJSON(signs)
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	return cmd
}

func (a *app) newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Verify the account credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *smsaero.Client) error {
				if err := c.Auth(ctx); err != nil {
					return err
				}
				return a.printJSON(map[string]bool{"authorized": true})
			})
		},
	}
}
