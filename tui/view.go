package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/pkgnav/internal/status"
	"github.com/grovetools/pkgnav/tui/theme"
)

const (
	headerLines = 2
	footerLines = 3
)

var statusStyles = map[status.Kind]lipgloss.Style{
	status.Loading:     lipgloss.NewStyle().Foreground(theme.Muted),
	status.NotFound:    lipgloss.NewStyle().Foreground(theme.Red),
	status.NotAGitRepo: lipgloss.NewStyle().Foreground(theme.Red),
	status.Modified:    lipgloss.NewStyle().Foreground(theme.Yellow),
	status.FetchFailed: lipgloss.NewStyle().Foreground(theme.Red),
	status.Behind:      lipgloss.NewStyle().Foreground(theme.Orange).Bold(true),
	status.Ahead:       lipgloss.NewStyle().Foreground(theme.Violet),
	status.UpToDate:    lipgloss.NewStyle().Foreground(theme.Green),
	status.NoRemote:    lipgloss.NewStyle().Foreground(theme.Muted),
	status.Unknown:     lipgloss.NewStyle().Foreground(theme.Muted),
}

// listHeight returns the number of repository rows that fit on screen.
func (m *Model) listHeight() int {
	h := m.height - headerLines - footerLines
	if h < 1 {
		return 1
	}
	return h
}

// View renders the full screen.
func (m *Model) View() string {
	if m.width < 30 || m.height < 8 {
		return "Terminal too small. Please resize."
	}

	var b strings.Builder

	// Header
	title := theme.DefaultStyles.Header.Render("PACKAGE REPOSITORIES")
	counts := theme.DefaultStyles.MutedTxt.Render(
		fmt.Sprintf("%d repositories, %d without descriptor", len(m.repos), m.withoutDescriptor))
	b.WriteString(title + "  " + counts + "\n\n")

	// Rows
	nameWidth := m.longestName() + 2
	available := m.listHeight()
	end := m.scrollOffset + available
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := m.scrollOffset; i < end; i++ {
		rp := m.visible[i]
		st := m.statuses[rp.Name]

		marker := "  "
		name := rp.Name
		if i == m.cursor {
			marker = "> "
			name = theme.DefaultStyles.Selected.Render(name)
		}
		pad := strings.Repeat(" ", nameWidth-len(rp.Name))

		descriptor := ""
		if !rp.HasBuildFile {
			descriptor = theme.DefaultStyles.MutedTxt.Render("  (no descriptor)")
		}

		b.WriteString(marker + name + pad + m.renderStatus(st) + descriptor + "\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(theme.DefaultStyles.MutedTxt.Render("  no repositories match") + "\n")
	}
	for i := end - m.scrollOffset; i < available; i++ {
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(m.footerLine() + "\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *Model) renderStatus(st status.SyncStatus) string {
	style, ok := statusStyles[st.Kind]
	if !ok {
		style = theme.DefaultStyles.MutedTxt
	}
	label := st.String()
	if st.Kind == status.Loading {
		label = "..."
	}
	return style.Render(label)
}

func (m *Model) footerLine() string {
	var parts []string

	if m.progress.Total > 0 && !m.progress.Complete {
		parts = append(parts, fmt.Sprintf("probing %d/%d", m.progress.Done, m.progress.Total))
	}
	if m.opMessage != "" {
		parts = append(parts, m.opMessage)
	}
	if m.filterInput.Focused() {
		parts = append(parts, "filter: "+m.filterInput.View())
	} else if m.filterInput.Value() != "" {
		parts = append(parts, "filter: "+m.filterInput.Value())
	}
	if len(parts) == 0 {
		parts = append(parts, "ready")
	}

	return theme.DefaultStyles.Footer.Render(strings.Join(parts, "  |  "))
}

func (m *Model) longestName() int {
	longest := 0
	for _, rp := range m.repos {
		if len(rp.Name) > longest {
			longest = len(rp.Name)
		}
	}
	return longest
}
