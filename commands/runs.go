package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgeworks/agent-hooks/internal/config"
	"github.com/forgeworks/agent-hooks/internal/storage/disk"
	"github.com/forgeworks/agent-hooks/internal/utils"
)

// NewRunsCmd creates the runs command for querying recorded chain runs.
func NewRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage and query recorded hook chain runs",
	}

	cmd.AddCommand(newRunsListCmd())
	cmd.AddCommand(newRunsShowCmd())
	cmd.AddCommand(newRunsCleanupCmd())

	return cmd
}

func newRunsListCmd() *cobra.Command {
	var (
		eventFilter string
		jsonOutput  bool
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent chain runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := disk.NewSQLiteStore()
			if err != nil {
				return fmt.Errorf("failed to create storage: %w", err)
			}
			defer storage.Close()

			runs, err := storage.ListChainRuns(limit)
			if err != nil {
				return fmt.Errorf("failed to list chain runs: %w", err)
			}

			if eventFilter != "" {
				filtered := runs[:0]
				for _, run := range runs {
					if run.Event == eventFilter {
						filtered = append(filtered, run)
					}
				}
				runs = filtered
			}

			if jsonOutput {
				data, err := json.MarshalIndent(runs, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal runs: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEVENT\tSESSION\tREPO\tHOOKS\tFAILED\tBLOCKED\tSTARTED")
			for _, run := range runs {
				blocked := ""
				if !run.Result.ShouldContinue {
					blocked = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
					utils.TruncateStr(run.ID, 11),
					run.Event,
					utils.TruncateStr(run.SessionID, 11),
					run.Repo,
					run.Result.TotalHooks,
					run.Result.Failed,
					blocked,
					run.StartedAt.Format("2006-01-02 15:04:05"),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&eventFilter, "event", "", "Filter by event name")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of runs to list")

	return cmd
}

func newRunsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one chain run with its per-hook results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := disk.NewSQLiteStore()
			if err != nil {
				return fmt.Errorf("failed to create storage: %w", err)
			}
			defer storage.Close()

			run, err := storage.GetChainRun(args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(run, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal run: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newRunsCleanupCmd() *cobra.Command {
	var olderThanDays int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete chain runs older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThanDays <= 0 {
				olderThanDays = config.Load().History.RetentionDays
			}

			storage, err := disk.NewSQLiteStore()
			if err != nil {
				return fmt.Errorf("failed to create storage: %w", err)
			}
			defer storage.Close()

			cutoff := time.Now().AddDate(0, 0, -olderThanDays)
			deleted, err := storage.DeleteChainRunsBefore(cutoff)
			if err != nil {
				return fmt.Errorf("failed to clean up chain runs: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d chain runs older than %d days\n", deleted, olderThanDays)
			return nil
		},
	}

	cmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Delete runs older than this many days (defaults to configured retention)")

	return cmd
}
