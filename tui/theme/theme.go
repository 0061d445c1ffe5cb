// Package theme holds the shared lipgloss palette for the pkgnav TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// ANSI-friendly palette so the TUI respects the user's terminal colors.
var (
	Green  = lipgloss.Color("2")
	Yellow = lipgloss.Color("3")
	Red    = lipgloss.Color("1")
	Orange = lipgloss.Color("208")
	Cyan   = lipgloss.Color("6")
	Blue   = lipgloss.Color("4")
	Violet = lipgloss.Color("5")
	Muted  = lipgloss.Color("8")
	Border = lipgloss.Color("8")
)

// Styles groups the reusable component styles.
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style
	MutedTxt lipgloss.Style
	Accent   lipgloss.Style
	ErrorTxt lipgloss.Style
}

// DefaultStyles is the standard style set.
var DefaultStyles = Styles{
	Header:   lipgloss.NewStyle().Bold(true).Foreground(Orange),
	Footer:   lipgloss.NewStyle().Foreground(Muted),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(Cyan),
	MutedTxt: lipgloss.NewStyle().Foreground(Muted),
	Accent:   lipgloss.NewStyle().Foreground(Cyan),
	ErrorTxt: lipgloss.NewStyle().Foreground(Red),
}
