// Package grid lays the posts of one subreddit out as a packed grid of
// bubbles grouped by sentiment.
package grid

import (
	"math"
	"sort"

	"github.com/dtkav/redditviz/internal/dataset"
	"github.com/dtkav/redditviz/internal/viewport"
)

// Box is the drawing area and bubble geometry of one breakpoint tier.
type Box struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Radius  float64 `json:"radius"`
	Padding float64 `json:"padding"`
}

// Mobile boxes follow the viewport between these bounds.
const (
	mobileMin    = 250
	mobileMax    = 280
	mobileMargin = 40
)

// BoxFor picks the box of the viewport's breakpoint tier.
func BoxFor(v viewport.Viewport) Box {
	switch viewport.ClassOf(v) {
	case viewport.Mobile:
		w := math.Max(mobileMin, math.Min(mobileMax, v.Width-mobileMargin))
		return Box{Width: w, Height: w, Radius: 6, Padding: 3}
	case viewport.Tablet:
		return Box{Width: 350, Height: 350, Radius: 8, Padding: 3.5}
	default:
		return Box{Width: 400, Height: 400, Radius: 10, Padding: 4}
	}
}

// Step is the distance between neighbouring bubble centres.
func (b Box) Step() float64 {
	return 2*b.Radius + b.Padding
}

// Columns is how many bubbles fit across the box; at least one.
func (b Box) Columns() int {
	step := b.Step()
	if step <= 0 {
		return 1
	}
	return max(1, int(math.Floor(b.Width/step)))
}

// Cell is a post placed on the grid. X and Y are the bubble centre in px.
type Cell struct {
	Post   dataset.Post `json:"post"`
	Index  int          `json:"index"`
	Column int          `json:"column"`
	Row    int          `json:"row"`
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
}

// Grid is the laid-out view of one subreddit.
type Grid struct {
	Subreddit string `json:"subreddit"`
	Box       Box    `json:"box"`
	Columns   int    `json:"columns"`
	Rows      int    `json:"rows"`
	Cells     []Cell `json:"cells"`
}

// Layout filters posts to subreddit, groups them negative, neutral, positive
// (stable within a group) and assigns each a cell. The same inputs always
// give the same cells; posts is not modified.
func Layout(posts []dataset.Post, subreddit string, v viewport.Viewport) Grid {
	var selected []dataset.Post
	for _, p := range posts {
		if p.Subreddit == subreddit {
			selected = append(selected, p)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Sentiment.Rank() < selected[j].Sentiment.Rank()
	})

	box := BoxFor(v)
	columns := box.Columns()
	step := box.Step()

	cells := make([]Cell, len(selected))
	for i, p := range selected {
		col, row := i%columns, i/columns
		cells[i] = Cell{
			Post:   p,
			Index:  i,
			Column: col,
			Row:    row,
			X:      float64(col)*step + step/2,
			Y:      float64(row)*step + step/2,
		}
	}

	rows := (len(cells) + columns - 1) / columns
	box.Height = math.Max(box.Height, float64(rows)*step)

	return Grid{
		Subreddit: subreddit,
		Box:       box,
		Columns:   columns,
		Rows:      rows,
		Cells:     cells,
	}
}

// At returns the cell at column, row.
func (g Grid) At(column, row int) (Cell, bool) {
	if column < 0 || column >= g.Columns || row < 0 {
		return Cell{}, false
	}
	i := row*g.Columns + column
	if i >= len(g.Cells) {
		return Cell{}, false
	}
	return g.Cells[i], true
}
