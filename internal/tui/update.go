package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.ZoomIn):
			m.zoom *= zoomStep
			if m.zoom > zoomMax {
				m.zoom = zoomMax
			}
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			return m, nil

		case key.Matches(msg, m.keys.ZoomOut):
			m.zoom /= zoomStep
			if m.zoom < zoomMin {
				m.zoom = zoomMin
			}
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			return m, nil

		case key.Matches(msg, m.keys.NextSlice):
			if m.idx < m.sliceCount()-1 {
				m.idx++
			}
			m.status = m.sliceStatus()
			return m, nil

		case key.Matches(msg, m.keys.PrevSlice):
			if m.idx > 0 {
				m.idx--
			}
			m.status = m.sliceStatus()
			return m, nil

		case key.Matches(msg, m.keys.Fill):
			m.fill = !m.fill
			if m.fill {
				m.status = "fill: on"
			} else {
				m.status = "fill: off"
			}
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.zoom = 1.0
			m.offsetX = 0
			m.offsetY = 0
			m.status = "view reset"
			return m, nil
		}

		// Panning is direction-dependent, so it dispatches on the raw key.
		switch msg.String() {
		case "left":
			m.offsetX += 2
		case "right":
			m.offsetX -= 2
		case "up":
			m.offsetY += 1
		case "down":
			m.offsetY -= 1
		}
		return m, nil
	}

	return m, nil
}

func (m Model) sliceStatus() string {
	s := m.currentSlice()
	if s == nil {
		return "no slices"
	}
	return fmt.Sprintf("slice %d/%d  z=%.3f", m.idx+1, m.sliceCount(), s.Z())
}
