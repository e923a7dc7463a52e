// Package server exposes the dashboard over HTTP and as a static export.
package server

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"github.com/dtkav/redditviz/internal/chart"
	"github.com/dtkav/redditviz/internal/dataset"
	"github.com/dtkav/redditviz/internal/embed"
	"github.com/dtkav/redditviz/internal/grid"
	"github.com/dtkav/redditviz/internal/page"
	"github.com/dtkav/redditviz/internal/selection"
	"github.com/dtkav/redditviz/internal/viewport"
)

// DefaultTitle heads the page.
const DefaultTitle = "Reddit Sentiment Dashboard"

// Dashboard builds pages, specs and grids over one dataset.
type Dashboard struct {
	data       *dataset.Dataset
	dataURL    string
	title      string
	debounceMS int
	selected   string
	logger     *slog.Logger
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithDataURL sets the URL the chart specs load the CSV from.
func WithDataURL(u string) Option {
	return func(d *Dashboard) {
		d.dataURL = u
	}
}

// WithTitle sets the page title.
func WithTitle(t string) Option {
	return func(d *Dashboard) {
		d.title = t
	}
}

// WithDebounce sets the client resize debounce in milliseconds.
func WithDebounce(ms int) Option {
	return func(d *Dashboard) {
		d.debounceMS = ms
	}
}

// WithDefaultSubreddit sets the subreddit selected when a request names none.
func WithDefaultSubreddit(s string) Option {
	return func(d *Dashboard) {
		d.selected = s
	}
}

// WithLogger sets the dashboard's logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dashboard) {
		d.logger = l
	}
}

// NewDashboard creates a dashboard over data.
func NewDashboard(data *dataset.Dataset, opts ...Option) *Dashboard {
	d := &Dashboard{
		data:       data,
		dataURL:    "/data/posts.csv",
		title:      DefaultTitle,
		debounceMS: 250,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.selected == "" || !data.Has(d.selected) {
		if subs := data.Subreddits(); len(subs) > 0 {
			d.selected = subs[0]
		}
	}
	return d
}

// Data is the dashboard's dataset.
func (d *Dashboard) Data() *dataset.Dataset { return d.data }

// Selected is the subreddit used when a request names none.
func (d *Dashboard) Selected() string { return d.selected }

func (d *Dashboard) subreddit(s string) string {
	if s == "" {
		return d.selected
	}
	return s
}

// Specs resolves every catalog panel for v against the page layout.
func (d *Dashboard) Specs(v viewport.Viewport, subreddit string) (map[string]chart.Spec, error) {
	doc, err := page.Layout(d.data.Subreddits())
	if err != nil {
		return nil, err
	}
	r := viewport.NewResolver(doc)
	sub := d.subreddit(subreddit)

	specs := make(map[string]chart.Spec, len(chart.Catalog))
	for _, p := range chart.Catalog {
		specs[p.Anchor] = p.Resolve(r, v, d.dataURL, sub)
	}
	return specs, nil
}

// Grid lays out subreddit for v and returns the drawn result.
func (d *Dashboard) Grid(ctx context.Context, v viewport.Viewport, subreddit string) GridResponse {
	surface := &snapshot{}
	c := selection.New(d.data, surface,
		selection.WithViewport(v),
		selection.WithLogger(d.logger))
	st := c.Select(ctx, subreddit)
	return surface.response(st)
}

// WritePage renders the full page for v. Specs go through an embed
// dispatcher into the page, then the selection controller draws the grid
// and pushes the subreddit into the weather chart.
func (d *Dashboard) WritePage(ctx context.Context, w io.Writer, v viewport.Viewport, subreddit string) error {
	subs := d.data.Subreddits()
	sub := d.subreddit(subreddit)

	doc, err := page.Layout(subs)
	if err != nil {
		return err
	}
	pg := page.New(doc)
	disp := embed.NewDispatcher(pg, embed.WithLogger(d.logger))
	r := viewport.NewResolver(doc)
	for _, p := range chart.Catalog {
		disp.Embed(ctx, p.Anchor, p.Resolve(r, v, d.dataURL, sub), p.Label)
	}
	disp.Wait()

	surface := &snapshot{}
	c := selection.New(d.data, surface,
		selection.WithViewport(v),
		selection.WithParameters(disp),
		selection.WithLogger(d.logger))
	c.Select(ctx, sub)

	err = pg.Write(w, page.Data{
		Title:       d.title,
		Subreddits:  subs,
		Selected:    sub,
		DebounceMS:  d.debounceMS,
		Width:       v.Width,
		GridTitle:   surface.title,
		GridSummary: surface.summary.Text(),
		GridSVG:     template.HTML(surface.svg),
	})
	if err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// snapshot is a selection.Surface that keeps the last drawing as SVG.
type snapshot struct {
	title   string
	summary grid.Summary
	svg     string
}

func (s *snapshot) Clear() {
	s.title = ""
	s.summary = grid.Summary{}
	s.svg = ""
}

func (s *snapshot) SetTitle(title string) { s.title = title }

func (s *snapshot) SetSummary(sum grid.Summary) { s.summary = sum }

func (s *snapshot) Draw(g grid.Grid, tips []grid.Tooltip) {
	s.svg = grid.SVG(g, tips)
}

func (s *snapshot) response(st selection.State) GridResponse {
	cells := st.Grid.Cells
	if cells == nil {
		cells = []grid.Cell{}
	}
	tips := st.Tooltips
	if tips == nil {
		tips = []grid.Tooltip{}
	}
	return GridResponse{
		Subreddit:   st.Subreddit,
		Title:       s.title,
		Summary:     s.summary,
		SummaryText: s.summary.Text(),
		Box:         st.Grid.Box,
		Columns:     st.Grid.Columns,
		Rows:        st.Grid.Rows,
		Cells:       cells,
		Tooltips:    tips,
		SVG:         s.svg,
	}
}
