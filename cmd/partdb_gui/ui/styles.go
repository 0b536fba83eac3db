package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#2196F3")
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("240")
	colorBorder  = lipgloss.Color("238")
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
)

// Styles holds the styled components used by the GUI.
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	Pane        lipgloss.Style
	FocusedPane lipgloss.Style

	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	FieldName  lipgloss.Style
	FieldValue lipgloss.Style
	Dirty      lipgloss.Style

	Error lipgloss.Style
}

// DefaultStyles returns the partdb_gui style set.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),

		FocusedPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),

		Selected: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true),

		FieldName: lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(18),

		FieldValue: lipgloss.NewStyle(),

		Dirty: lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),
	}
}
