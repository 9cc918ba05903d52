package tui

import "github.com/charmbracelet/lipgloss"

var (
	baseFg   = lipgloss.Color("#E6E6E6")
	accentFg = lipgloss.Color("#7C3AED")
	dimFg    = lipgloss.Color("#6B7280")

	appStyle = lipgloss.NewStyle().
			Foreground(baseFg)

	titleStyle = lipgloss.NewStyle().
			Foreground(accentFg).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimFg)

	statusStyle = lipgloss.NewStyle().
			Foreground(baseFg)

	mapStyle = lipgloss.NewStyle().
			Foreground(accentFg)
)
