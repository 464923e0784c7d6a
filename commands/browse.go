package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/forgeworks/agent-hooks/internal/storage/disk"
	"github.com/forgeworks/agent-hooks/internal/tui/browse"
)

// NewBrowseCmd creates the interactive chain-run browser.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "browse",
		Aliases: []string{"tui", "b"},
		Short:   "Browse recorded chain runs interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := disk.NewSQLiteStore()
			if err != nil {
				return fmt.Errorf("failed to create storage: %w", err)
			}
			defer storage.Close()

			program := tea.NewProgram(browse.NewModel(storage), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("failed to run browser: %w", err)
			}
			return nil
		},
	}
}
