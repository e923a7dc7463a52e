package main

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dtkav/redditviz/internal/dataset"
	"github.com/dtkav/redditviz/internal/resize"
	"github.com/dtkav/redditviz/internal/selection"
	"github.com/dtkav/redditviz/internal/viewport"
)

// model holds the terminal dashboard state.
type model struct {
	ctx  context.Context
	data *dataset.Dataset
	subs []string

	// subIdx indexes subs; -1 when the dataset is empty.
	subIdx  int
	surface *termSurface
	ctrl    *selection.Controller
	resizer *resize.Coordinator

	// active is the index of the highlighted bubble.
	active int

	winWidth, winHeight int
	relayouts           int

	keys keyMap
	help help.Model
}

// relayoutMsg carries a settled terminal size back into the update loop.
type relayoutMsg struct {
	viewport viewport.Viewport
}

func newModel(ctx context.Context, data *dataset.Dataset, ctrl *selection.Controller, surface *termSurface, resizer *resize.Coordinator, initial string) *model {
	m := &model{
		ctx:     ctx,
		data:    data,
		subs:    data.Subreddits(),
		subIdx:  -1,
		surface: surface,
		ctrl:    ctrl,
		resizer: resizer,
		// Defaults for window dimensions; they will be updated on WindowSizeMsg.
		winWidth:  80,
		winHeight: 24,
		keys:      keys,
		help:      help.New(),
	}
	for i, s := range m.subs {
		if s == initial {
			m.subIdx = i
		}
	}
	if m.subIdx < 0 && len(m.subs) > 0 {
		m.subIdx = 0
	}
	return m
}

func (m *model) selected() string {
	if m.subIdx < 0 {
		return ""
	}
	return m.subs[m.subIdx]
}

// Init draws the initial selection.
func (m *model) Init() tea.Cmd {
	m.ctrl.Select(m.ctx, m.selected())
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.winWidth = msg.Width
		m.winHeight = msg.Height
		m.help.Width = msg.Width
		if m.resizer != nil {
			m.resizer.Notify(m.ctx, viewport.FromTerminal(msg.Width, msg.Height))
		}
		return m, nil

	case relayoutMsg:
		m.ctrl.Relayout(m.ctx, msg.viewport)
		m.relayouts++
		m.clampActive()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.resizer != nil {
				m.resizer.Stop()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Prev):
			if m.subIdx > 0 {
				m.subIdx--
				m.selectCurrent()
			}

		case key.Matches(msg, m.keys.Next):
			if m.subIdx < len(m.subs)-1 {
				m.subIdx++
				m.selectCurrent()
			}

		case key.Matches(msg, m.keys.Left):
			m.move(-1)

		case key.Matches(msg, m.keys.Right):
			m.move(1)

		case key.Matches(msg, m.keys.Up):
			m.move(-m.surface.grid.Columns)

		case key.Matches(msg, m.keys.Down):
			m.move(m.surface.grid.Columns)

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil
	}
	return m, nil
}

func (m *model) selectCurrent() {
	m.ctrl.Select(m.ctx, m.selected())
	m.active = 0
}

// move shifts the active bubble by delta cells, staying inside the grid.
func (m *model) move(delta int) {
	n := len(m.surface.grid.Cells)
	if n == 0 || delta == 0 {
		return
	}
	next := m.active + delta
	if next < 0 || next >= n {
		return
	}
	m.active = next
}

func (m *model) clampActive() {
	n := len(m.surface.grid.Cells)
	switch {
	case n == 0:
		m.active = 0
	case m.active >= n:
		m.active = n - 1
	}
}
