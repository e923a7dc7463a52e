// Package resize debounces viewport changes and rebuilds the mounted panels
// once a burst of resize events has settled.
package resize

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dtkav/redditviz/internal/viewport"
)

// DefaultDelay is the quiet period after the last resize event.
const DefaultDelay = 250 * time.Millisecond

// Panel is a visualization that can be rebuilt for a new viewport.
type Panel interface {
	// Mounted reports whether the panel's mount point is populated.
	Mounted() bool
	Rebuild(ctx context.Context, v viewport.Viewport) error
}

// PanelFunc adapts a pair of functions to Panel. A nil IsMounted means
// always mounted.
type PanelFunc struct {
	IsMounted func() bool
	Build     func(ctx context.Context, v viewport.Viewport) error
}

func (p PanelFunc) Mounted() bool {
	return p.IsMounted == nil || p.IsMounted()
}

func (p PanelFunc) Rebuild(ctx context.Context, v viewport.Viewport) error {
	return p.Build(ctx, v)
}

// Coordinator is idle until Notify arms its timer; further Notify calls
// reset the timer; when it fires one rebuild pass runs and it is idle again.
type Coordinator struct {
	clock  clockwork.Clock
	delay  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	panels  []namedPanel
	pending clockwork.Timer
	gen     uint64
	last    viewport.Viewport
	passes  int
}

type namedPanel struct {
	name  string
	panel Panel
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock replaces the real clock.
func WithClock(c clockwork.Clock) Option {
	return func(co *Coordinator) {
		co.clock = c
	}
}

// WithDelay sets the debounce interval.
func WithDelay(d time.Duration) Option {
	return func(co *Coordinator) {
		co.delay = d
	}
}

// WithLogger sets the coordinator's logger.
func WithLogger(l *slog.Logger) Option {
	return func(co *Coordinator) {
		co.logger = l
	}
}

// New creates an idle coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		clock:  clockwork.NewRealClock(),
		delay:  DefaultDelay,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a panel to every future rebuild pass.
func (c *Coordinator) Register(name string, p Panel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panels = append(c.panels, namedPanel{name: name, panel: p})
}

// Notify records a resize to v and (re)arms the timer. The pass that
// eventually runs uses the ctx of the last Notify and is skipped if it is done.
func (c *Coordinator) Notify(ctx context.Context, v viewport.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = v
	if c.pending != nil {
		c.pending.Stop()
	}
	c.gen++
	gen := c.gen
	c.pending = c.clock.AfterFunc(c.delay, func() { c.fire(ctx, gen) })
}

// Pending reports whether a rebuild is scheduled.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Passes is the number of rebuild passes run so far.
func (c *Coordinator) Passes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passes
}

// Stop cancels a scheduled rebuild.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Coordinator) fire(ctx context.Context, gen uint64) {
	c.mu.Lock()
	// a reset timer may still fire if Stop lost the race
	if c.pending == nil || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.passes++
	v := c.last
	panels := append([]namedPanel(nil), c.panels...)
	c.mu.Unlock()

	c.rebuild(ctx, v, panels)
}

func (c *Coordinator) rebuild(ctx context.Context, v viewport.Viewport, panels []namedPanel) {
	if err := ctx.Err(); err != nil {
		c.logger.Debug("resize pass cancelled", "viewport", v.String(), "error", err)
		return
	}
	rebuilt := 0
	for _, np := range panels {
		if !np.panel.Mounted() {
			c.logger.Debug("skipping unmounted panel", "panel", np.name)
			continue
		}
		if err := np.panel.Rebuild(ctx, v); err != nil {
			c.logger.Error("panel rebuild failed", "panel", np.name, "viewport", v.String(), "error", err)
			continue
		}
		rebuilt++
	}
	c.logger.Debug("resize pass done", "viewport", v.String(), "rebuilt", rebuilt, "panels", len(panels))
}
