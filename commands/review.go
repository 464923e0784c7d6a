package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgeworks/agent-hooks/internal/review"
)

// NewReviewCmd creates the pre-commit review command. Review is
// currently disabled and always allows the commit; the command is kept
// so callers wired to it keep working.
func NewReviewCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Run the pre-commit code review gate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to resolve working directory: %w", err)
				}
				projectPath = cwd
			}

			cfg := review.DefaultConfig()
			decision := review.ExecutePreCommitReview(projectPath, &cfg)

			data, err := json.MarshalIndent(decision, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal decision: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", "", "Project path (defaults to the working directory)")

	return cmd
}
