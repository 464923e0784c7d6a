package browse

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/forgeworks/agent-hooks/internal/hooks"
	"github.com/forgeworks/agent-hooks/internal/storage/interfaces"
)

type viewMode int

const (
	listView viewMode = iota
	detailView
)

type runsLoadedMsg struct {
	runs []*hooks.ChainRun
	err  error
}

// Model is the bubbletea model for browsing recorded chain runs.
type Model struct {
	storage interfaces.ChainStorer
	keys    KeyMap

	runs   []*hooks.ChainRun
	cursor int
	mode   viewMode
	err    error

	width  int
	height int
}

func NewModel(storage interfaces.ChainStorer) Model {
	return Model{
		storage: storage,
		keys:    NewKeyMap(),
		mode:    listView,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadRuns
}

func (m Model) loadRuns() tea.Msg {
	runs, err := m.storage.ListChainRuns(200)
	return runsLoadedMsg{runs: runs, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case runsLoadedMsg:
		m.err = msg.err
		m.runs = msg.runs
		if m.cursor >= len(m.runs) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.mode == detailView {
				m.mode = listView
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.mode == listView && m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.mode == listView && m.cursor < len(m.runs)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Confirm):
			if m.mode == listView && len(m.runs) > 0 {
				m.mode = detailView
			}

		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadRuns
		}
	}

	return m, nil
}

func (m Model) selected() *hooks.ChainRun {
	if m.cursor < 0 || m.cursor >= len(m.runs) {
		return nil
	}
	return m.runs[m.cursor]
}
