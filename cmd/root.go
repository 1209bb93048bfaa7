package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "familyhub",
		Short:        "Family missions and multiplication mastery",
		Long:         "familyhub assigns missions to kids, runs multiplication training and certification tests in the terminal, and pays out rewards.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides storage.db_path)")
	root.PersistentFlags().String("config", "", "Path to config file (default ./config.yaml or the user config dir)")

	root.AddCommand(
		newMissionCmd(),
		newTrainCmd(),
		newTestCmd(),
		newSummaryCmd(),
		newHintCmd(),
		newRewardsCmd(),
		newLLMCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI, cancelling the command context on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}
