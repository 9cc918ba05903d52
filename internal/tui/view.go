package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	header := titleStyle.Render("lamella")
	if m.name != "" {
		header += dimStyle.Render("  " + m.name)
	}

	status := statusStyle.Render(m.statusLine())
	helpView := m.help.View(m.keys)
	footer := lipgloss.JoinVertical(lipgloss.Left, status, helpView)

	mapH := m.height - 1 - lipgloss.Height(footer)
	if mapH < 1 {
		mapH = 1
	}
	mapView := mapStyle.Render(m.renderSlice(m.width, mapH))

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, mapView, footer))
}

func (m Model) statusLine() string {
	s := m.currentSlice()
	if s == nil {
		return "no slices to show"
	}

	var shells, holes, open int
	for _, c := range s.Contours() {
		w := c.Winding()
		switch {
		case m.policy.IsOuter(w):
			shells++
		case m.policy.IsHole(w):
			holes++
		default:
			open++
		}
	}

	line := fmt.Sprintf("slice %d/%d  z=%.3f  contours=%d  shells=%d holes=%d",
		m.idx+1, m.sliceCount(), s.Z(), s.ContourCount(), shells, holes)
	if open > 0 {
		line += fmt.Sprintf(" open=%d", open)
	}
	if m.status != "" {
		line += dimStyle.Render("  " + m.status)
	}
	return line
}
