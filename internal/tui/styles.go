// Package tui holds the terminal surfaces: the profile generator form and
// the admin console.
package tui

import "github.com/charmbracelet/lipgloss"

// Brand colors.
var (
	Primary     = lipgloss.Color("#1F3A5F")
	Accent      = lipgloss.Color("#F2A541")
	Muted       = lipgloss.Color("#8A94A6")
	Destructive = lipgloss.Color("#E53935")
	Success     = lipgloss.Color("#43A047")
)

// Styles are the shared lipgloss styles.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Card      lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the console styles.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(Primary).Padding(0, 1),
		Label:     lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(Muted),
		Error:     lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(Success),
		Tab:       lipgloss.NewStyle().Foreground(Muted).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(Accent).Underline(true).Padding(0, 1),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Primary).Padding(0, 1),
		Help:      lipgloss.NewStyle().Foreground(Muted).Italic(true),
	}
}
