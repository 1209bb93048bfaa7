package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/familyhub/internal/rewards"
)

func newRewardsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rewards",
		Short: "Show cash balances, XP and payouts",
	}

	balance := &cobra.Command{
		Use:   "balance <user>",
		Short: "Show a user's cash, XP level and icon",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			acct, err := e.store.LedgerRepo().Account(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := rewards.Progress(acct.XP)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User:  %s\n", acct.UserID)
			fmt.Fprintf(out, "Cash:  $%d\n", acct.Cash)
			fmt.Fprintf(out, "Level: %d %s (%d XP)\n", p.Level.Number, p.Level.Title, acct.XP)
			if p.NextLevelXP > 0 {
				fmt.Fprintf(out, "Next:  %d XP to go (%.1f%%)\n", p.NextLevelXP-acct.XP, p.ProgressPct)
			}
			if acct.Icon != "" {
				fmt.Fprintf(out, "Icon:  %s\n", acct.Icon)
			}
			return nil
		}),
	}

	var limit int
	history := &cobra.Command{
		Use:   "history <user>",
		Short: "List a user's ledger transactions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			txs, err := e.store.LedgerRepo().Transactions(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tAMOUNT\tBALANCE\tDESCRIPTION")
			for _, t := range txs {
				fmt.Fprintf(tw, "%s\t%+d\t%d\t%s\n",
					t.CreatedAt.Local().Format("2006-01-02 15:04"), t.Amount, t.Balance, t.Description)
			}
			return tw.Flush()
		}),
	}
	history.Flags().IntVar(&limit, "limit", 20, "Maximum number of transactions")

	c.AddCommand(balance, history)
	return c
}
