package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for agent-hooks.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "agent-hooks",
		Short:         "Event-driven hook automation for coding-assistant sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewTriggerCmd())
	rootCmd.AddCommand(NewConditionCmd())
	rootCmd.AddCommand(NewEventsCmd())
	rootCmd.AddCommand(NewRunsCmd())
	rootCmd.AddCommand(NewBrowseCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewReviewCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the CLI. A blocked chain (should_continue == false)
// exits with code 2 so callers gating an operation can distinguish it
// from ordinary failures.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if blockErr, ok := err.(*ChainBlockedError); ok {
			rootCmd.PrintErrln(blockErr.Error())
			os.Exit(2)
		}
		rootCmd.PrintErrln("Error:", err.Error())
		os.Exit(1)
	}
}
