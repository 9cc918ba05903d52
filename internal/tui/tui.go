// Package tui is an interactive terminal viewer for sliced contour
// stacks. Contours render as braille line art, one Z plane at a time,
// with keyboard zoom, pan, and plane stepping.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chazu/lamella/pkg/contour"
)

// Run opens the viewer on a slice stack and blocks until the user
// quits. The name labels the header, usually the scene file.
func Run(stack *contour.PolySliceStack, name string, policy contour.FillPolicy) error {
	p := tea.NewProgram(New(stack, name, policy), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
