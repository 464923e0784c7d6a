package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/forgeworks/agent-hooks/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	blockedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(1, 1)
)

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading chain runs: %v\n\nPress q to quit.", m.err)
	}

	if m.mode == detailView {
		return m.detailViewRender()
	}
	return m.listViewRender()
}

func (m Model) listViewRender() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Hook Chain Runs"))
	b.WriteString("\n\n")

	if len(m.runs) == 0 {
		b.WriteString("  No chain runs recorded yet.\n")
		b.WriteString(helpStyle.Render("r refresh • q quit"))
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %s %s %s %s %s",
		utils.PadStr("EVENT", 18),
		utils.PadStr("REPO", 16),
		utils.PadStr("HOOKS", 6),
		utils.PadStr("STATUS", 10),
		"STARTED",
	)))
	b.WriteString("\n")

	for i, run := range m.runs {
		status := okStyle.Render("ok")
		if run.Result.Failed > 0 {
			status = failStyle.Render(fmt.Sprintf("%d failed", run.Result.Failed))
		}
		if !run.Result.ShouldContinue {
			status = blockedStyle.Render("blocked")
		}

		line := fmt.Sprintf("  %s %s %s %s %s",
			utils.PadStr(utils.TruncateStr(run.Event, 17), 18),
			utils.PadStr(utils.TruncateStr(run.Repo, 15), 16),
			utils.PadStr(fmt.Sprintf("%d", run.Result.TotalHooks), 6),
			utils.PadStr(status, 10),
			run.StartedAt.Format("2006-01-02 15:04:05"),
		)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • enter details • r refresh • q quit"))
	return b.String()
}

func (m Model) detailViewRender() string {
	run := m.selected()
	if run == nil {
		return "No run selected.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Chain Run %s", utils.TruncateStr(run.ID, 11))))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Event:      %s\n", run.Event))
	b.WriteString(fmt.Sprintf("  Session:    %s\n", run.SessionID))
	b.WriteString(fmt.Sprintf("  Project:    %s\n", run.ProjectPath))
	b.WriteString(fmt.Sprintf("  Repo:       %s (%s)\n", run.Repo, run.Branch))
	b.WriteString(fmt.Sprintf("  Duration:   %s\n", utils.FormatMs(run.DurationMs)))
	b.WriteString(fmt.Sprintf("  Hooks:      %d total, %d successful, %d failed\n",
		run.Result.TotalHooks, run.Result.Successful, run.Result.Failed))
	if !run.Result.ShouldContinue {
		b.WriteString("  " + blockedStyle.Render("Chain blocked the pending operation") + "\n")
	}
	b.WriteString("\n")

	for i, result := range run.Result.Results {
		marker := okStyle.Render("✓")
		if !result.Success {
			marker = failStyle.Render("✗")
		}
		b.WriteString(fmt.Sprintf("  %s %d. %s (%s)\n", marker, i+1,
			utils.TruncateStr(result.HookCommand, 60), utils.FormatMs(result.ExecutionTimeMs)))
		if result.Error != "" {
			b.WriteString(failStyle.Render(fmt.Sprintf("      %s\n", utils.TruncateStr(result.Error, 70))))
		}
	}

	b.WriteString(helpStyle.Render("esc back • q quit"))
	return b.String()
}
