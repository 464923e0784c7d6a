package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgeworks/agent-hooks/internal/git"
)

// NewStatsCmd creates the stats command: code-change statistics between
// two commits of a project.
func NewStatsCmd() *cobra.Command {
	var projectPath string
	var fromRef string
	var toRef string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show git diff statistics between two commits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromRef == "" {
				return fmt.Errorf("--from is required")
			}
			if projectPath == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to resolve working directory: %w", err)
				}
				projectPath = cwd
			}

			stats, err := git.GetDiffStats(projectPath, fromRef, toRef)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal stats: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", "", "Project path (defaults to the working directory)")
	cmd.Flags().StringVar(&fromRef, "from", "", "Commit to diff from")
	cmd.Flags().StringVar(&toRef, "to", "", "Commit to diff to (defaults to HEAD)")

	return cmd
}
