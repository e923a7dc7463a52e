// Package selection reacts to subreddit changes: it refilters the dataset,
// lays the grid out again and redraws it from scratch.
package selection

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dtkav/redditviz/internal/chart"
	"github.com/dtkav/redditviz/internal/dataset"
	"github.com/dtkav/redditviz/internal/embed"
	"github.com/dtkav/redditviz/internal/grid"
	"github.com/dtkav/redditviz/internal/viewport"
)

// Surface is where the grid is drawn. Clear removes everything drawn before;
// Draw binds one tooltip per cell.
type Surface interface {
	Clear()
	SetTitle(title string)
	SetSummary(s grid.Summary)
	Draw(g grid.Grid, tips []grid.Tooltip)
}

// ParameterSink updates a bound parameter of an embedded chart.
// *embed.Dispatcher implements it. It must not call back into the controller.
type ParameterSink interface {
	UpdateParameter(ctx context.Context, anchor, name string, value any) error
}

// State is the result of the latest update.
type State struct {
	Subreddit string
	Viewport  viewport.Viewport
	Grid      grid.Grid
	Summary   grid.Summary
	Tooltips  []grid.Tooltip
}

// Controller owns the grid surface. Every update fully replaces it.
type Controller struct {
	data    *dataset.Dataset
	surface Surface
	params  ParameterSink
	logger  *slog.Logger

	mu       sync.Mutex
	selected string
	viewport viewport.Viewport
	drawn    bool
	state    State
}

// Option configures a Controller.
type Option func(*Controller)

// WithParameters makes Select push the subreddit into the weather chart.
func WithParameters(p ParameterSink) Option {
	return func(c *Controller) {
		c.params = p
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithViewport sets the viewport used before the first Relayout.
func WithViewport(v viewport.Viewport) Option {
	return func(c *Controller) {
		c.viewport = v
	}
}

// New creates a controller drawing data onto surface.
func New(data *dataset.Dataset, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		data:     data,
		surface:  surface,
		logger:   slog.Default(),
		viewport: viewport.Default,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select switches to subreddit, redraws and then points the weather chart at
// it. Both happen under the same lock so the grid and the chart never show
// different subreddits after overlapping calls.
func (c *Controller) Select(ctx context.Context, subreddit string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = subreddit
	st := c.redraw()

	if c.params != nil {
		err := c.params.UpdateParameter(ctx, chart.AnchorWeather, chart.SubredditParam, subreddit)
		switch {
		case errors.Is(err, embed.ErrNoHandle):
			c.logger.Debug("weather chart not mounted", "subreddit", subreddit)
		case err != nil:
			c.logger.Warn("weather update failed", "subreddit", subreddit, "error", err)
		}
	}
	return st
}

// Relayout redraws the current selection for a new viewport.
func (c *Controller) Relayout(_ context.Context, v viewport.Viewport) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = v
	return c.redraw()
}

// redraw recomputes the grid and replaces the surface. Caller holds c.mu.
func (c *Controller) redraw() State {
	g := grid.Layout(c.data.Filter(c.selected), c.selected, c.viewport)
	st := State{
		Subreddit: c.selected,
		Viewport:  c.viewport,
		Grid:      g,
		Summary:   grid.Summarize(g.Cells),
		Tooltips:  grid.Tooltips(g.Cells),
	}

	c.surface.Clear()
	c.surface.SetTitle(grid.Title(c.selected))
	c.surface.SetSummary(st.Summary)
	c.surface.Draw(g, st.Tooltips)

	c.drawn = true
	c.state = st
	c.logger.Debug("grid redrawn", "subreddit", c.selected, "posts", len(g.Cells), "viewport", c.viewport.String())
	return st
}

// Selected is the current subreddit.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// State returns the latest update.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mounted reports whether the grid has been drawn at least once.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drawn
}

// Rebuild lets the resize coordinator relayout the grid.
func (c *Controller) Rebuild(ctx context.Context, v viewport.Viewport) error {
	c.Relayout(ctx, v)
	return nil
}
