package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chazu/lamella/pkg/contour"
)

const (
	zoomStep = 1.2
	zoomMin  = 0.05
	zoomMax  = 64.0
)

// keyMap declares the viewer bindings. It satisfies help.KeyMap so the
// footer help renders straight from the same definitions.
type keyMap struct {
	PrevSlice key.Binding
	NextSlice key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Pan       key.Binding
	Fill      key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevSlice: key.NewBinding(
			key.WithKeys("pgdown", "j"),
			key.WithHelp("pgdn/j", "slice down"),
		),
		NextSlice: key.NewBinding(
			key.WithKeys("pgup", "k"),
			key.WithHelp("pgup/k", "slice up"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		Pan: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("arrows", "pan"),
		),
		Fill: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fill"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset view"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSlice, k.PrevSlice, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSlice, k.PrevSlice, k.Pan},
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Fill, k.Help, k.Quit},
	}
}

// Model is the slice viewer state: a stack of contour slices, the plane
// currently shown, and the view transform.
type Model struct {
	width  int
	height int

	zoom     float64
	offsetX  int
	offsetY  int
	idx      int
	fill     bool
	status   string

	stack  *contour.PolySliceStack
	policy contour.FillPolicy
	name   string

	keys keyMap
	help help.Model
}

// New builds a viewer over a sliced stack. The name labels the header,
// usually the source file the stack came from.
func New(stack *contour.PolySliceStack, name string, policy contour.FillPolicy) Model {
	return Model{
		zoom:   1.0,
		stack:  stack,
		policy: policy,
		name:   name,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) sliceCount() int {
	if m.stack == nil {
		return 0
	}
	return len(m.stack.Slices())
}

func (m Model) currentSlice() *contour.PolySlice {
	if m.idx < 0 || m.idx >= m.sliceCount() {
		return nil
	}
	return m.stack.Slices()[m.idx]
}
