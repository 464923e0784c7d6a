package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeworks/agent-hooks/internal/hooks"
)

// NewEventsCmd lists the event catalog.
func NewEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List the hook event catalog",
		Run: func(cmd *cobra.Command, args []string) {
			for _, event := range hooks.KnownEvents() {
				fmt.Fprintln(cmd.OutOrStdout(), event)
			}
		},
	}
}
