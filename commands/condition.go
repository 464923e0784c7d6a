package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeworks/agent-hooks/internal/hooks"
)

// NewConditionCmd creates the condition command for interactively
// testing gate expressions against a synthetic context.
func NewConditionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "condition",
		Short: "Work with hook condition expressions",
	}
	cmd.AddCommand(newConditionTestCmd())
	return cmd
}

func newConditionTestCmd() *cobra.Command {
	var event string
	var sessionID string

	cmd := &cobra.Command{
		Use:   "test <expression>",
		Short: "Evaluate a condition expression against a test context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hctx := &hooks.Context{
				Event:     event,
				SessionID: sessionID,
			}
			fmt.Fprintln(cmd.OutOrStdout(), hooks.EvaluateCondition(args[0], hctx))
			return nil
		},
	}

	cmd.Flags().StringVar(&event, "event", "", "Event name for the test context")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session id for the test context")

	return cmd
}
