package main

import (
	"github.com/dtkav/redditviz/internal/grid"
)

// termSurface holds the latest grid drawing for View. It is only touched
// from the bubbletea loop.
type termSurface struct {
	title   string
	summary grid.Summary
	grid    grid.Grid
	tips    []grid.Tooltip
	draws   int
}

func (s *termSurface) Clear() {
	s.title = ""
	s.summary = grid.Summary{}
	s.grid = grid.Grid{}
	s.tips = nil
}

func (s *termSurface) SetTitle(title string) { s.title = title }

func (s *termSurface) SetSummary(sum grid.Summary) { s.summary = sum }

func (s *termSurface) Draw(g grid.Grid, tips []grid.Tooltip) {
	s.grid = g
	s.tips = tips
	s.draws++
}

// tooltip returns the tooltip bound to cell i.
func (s *termSurface) tooltip(i int) (grid.Tooltip, bool) {
	if i < 0 || i >= len(s.tips) {
		return grid.Tooltip{}, false
	}
	return s.tips[i], true
}
