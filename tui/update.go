package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/grovetools/pkgnav/internal/ops"
	"github.com/grovetools/pkgnav/internal/repo"
)

// statusTickMsg triggers a snapshot re-read.
type statusTickMsg time.Time

// opDoneMsg reports a finished single-repository operation.
type opDoneMsg struct {
	kind ops.Kind
	name string
	err  error
}

// batchDoneMsg reports a finished batch operation.
type batchDoneMsg struct {
	kind  ops.Kind
	count int
	err   error
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case statusTickMsg:
		m.statuses = m.supervisor.Store().Snapshot()
		m.progress = m.supervisor.Progress()
		return m, m.tick()

	case opDoneMsg:
		m.opRunning = false
		if msg.err != nil {
			m.opMessage = fmt.Sprintf("%s %s failed: %v", msg.kind, msg.name, msg.err)
		} else {
			m.opMessage = fmt.Sprintf("%s %s done", msg.kind, msg.name)
		}
		// The operation may have changed sync state; re-probe just that repo.
		m.supervisor.RequestSingleRefresh(msg.name)
		return m, nil

	case batchDoneMsg:
		m.opRunning = false
		if msg.err != nil {
			m.opMessage = fmt.Sprintf("batch %s finished with errors: %v", msg.kind, msg.err)
		} else {
			m.opMessage = fmt.Sprintf("batch %s done (%d repositories)", msg.kind, msg.count)
		}
		return m, m.fullRefreshCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll {
		m.help.ShowAll = false
		return m, nil
	}

	// Handle filter input when it's focused
	if m.filterInput.Focused() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.applyFilter()
			return m, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.applyFilter()
			m.cursor = 0
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Filter):
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		m.opMessage = ""
		return m, m.fullRefreshCmd()

	case key.Matches(msg, m.keys.RefreshOne):
		if sel := m.selected(); sel != nil {
			m.supervisor.RequestSingleRefresh(sel.Name)
		}

	case key.Matches(msg, m.keys.Pull):
		return m.startOp(ops.Pull)

	case key.Matches(msg, m.keys.Build):
		return m.startOp(ops.Build)

	case key.Matches(msg, m.keys.Clean):
		return m.startOp(ops.Clean)

	case key.Matches(msg, m.keys.BuildBehind):
		return m.startBatchBuild()

	case key.Matches(msg, m.keys.Top):
		// Handle 'gg' - go to top
		if m.lastKeyWasG {
			m.cursor = 0
			m.ensureCursorVisible()
			m.lastKeyWasG = false
		} else {
			m.lastKeyWasG = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.listHeight() / 2
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.listHeight() / 2
		if m.cursor >= len(m.visible) {
			m.cursor = len(m.visible) - 1
		}
		m.ensureCursorVisible()
	}

	m.lastKeyWasG = false
	return m, nil
}

// fullRefreshCmd requests a full pass off the update loop; the request may
// briefly block draining a superseded pass.
func (m *Model) fullRefreshCmd() tea.Cmd {
	return func() tea.Msg {
		m.supervisor.RequestFullRefresh()
		return nil
	}
}

// startOp hands the terminal to the operation command for the selected
// repository. Operations are serialized; a second one is refused while the
// first runs.
func (m *Model) startOp(kind ops.Kind) (tea.Model, tea.Cmd) {
	if m.opRunning {
		m.opMessage = "an operation is already running"
		return m, nil
	}
	sel := m.selected()
	if sel == nil {
		return m, nil
	}
	execCmd, release, err := m.runner.Command(kind, sel.Path)
	if err != nil {
		m.opMessage = err.Error()
		return m, nil
	}
	m.opRunning = true
	m.opMessage = fmt.Sprintf("running %s on %s...", kind, sel.Name)
	name := sel.Name
	return m, tea.ExecProcess(execCmd, func(err error) tea.Msg {
		release()
		return opDoneMsg{kind: kind, name: name, err: err}
	})
}

// startBatchBuild builds every repository currently reported Behind,
// sequentially, with captured output.
func (m *Model) startBatchBuild() (tea.Model, tea.Cmd) {
	if m.opRunning {
		m.opMessage = "an operation is already running"
		return m, nil
	}
	behind := m.behindRepos()
	if len(behind) == 0 {
		m.opMessage = "nothing is behind"
		return m, nil
	}
	m.opRunning = true
	m.opMessage = fmt.Sprintf("building %d repositories...", len(behind))
	paths := lo.Map(behind, func(r repo.Repository, _ int) string { return r.Path })
	return m, func() tea.Msg {
		err := m.runner.RunAll(context.Background(), ops.Build, paths)
		return batchDoneMsg{kind: ops.Build, count: len(paths), err: err}
	}
}

// ensureCursorVisible adjusts the scroll offset to keep the cursor on screen.
func (m *Model) ensureCursorVisible() {
	available := m.listHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+available {
		m.scrollOffset = m.cursor - available + 1
	}
}
