// Package embed hands chart specs to a rendering collaborator and keeps the
// handles it returns.
package embed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dtkav/redditviz/internal/chart"
)

// ErrNoHandle is returned when a parameter update targets an anchor that has
// no rendered view.
var ErrNoHandle = errors.New("no rendered view for anchor")

// Renderer draws a spec into the view mounted at anchor.
type Renderer interface {
	Render(ctx context.Context, anchor string, spec chart.Spec) (Handle, error)
}

// Handle is a rendered view whose bound parameters can change in place.
type Handle interface {
	UpdateParameter(ctx context.Context, name string, value any) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, anchor string, spec chart.Spec) (Handle, error)

func (f RendererFunc) Render(ctx context.Context, anchor string, spec chart.Spec) (Handle, error) {
	return f(ctx, anchor, spec)
}

// Dispatcher renders specs asynchronously. A failing render is logged and
// never affects other renders.
type Dispatcher struct {
	renderer Renderer
	logger   *slog.Logger

	wg      sync.WaitGroup
	mu      sync.Mutex
	issued  map[string]uint64
	applied map[string]uint64
	handles map[string]Handle
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for render outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// NewDispatcher creates a dispatcher over r.
func NewDispatcher(r Renderer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		renderer: r,
		logger:   slog.Default(),
		issued:   make(map[string]uint64),
		applied:  make(map[string]uint64),
		handles:  make(map[string]Handle),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Embed starts rendering spec at anchor and returns immediately.
func (d *Dispatcher) Embed(ctx context.Context, anchor string, spec chart.Spec, label string) {
	d.mu.Lock()
	d.issued[anchor]++
	seq := d.issued[anchor]
	d.mu.Unlock()

	id := uuid.NewString()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		h, err := d.render(ctx, anchor, spec)
		if err != nil {
			d.logger.Error(label+" error", "anchor", anchor, "render_id", id, "error", err)
			return
		}
		if !d.apply(anchor, seq, h) {
			d.logger.Debug(label+" superseded", "anchor", anchor, "render_id", id)
			return
		}
		d.logger.Info(label+" loaded", "anchor", anchor, "render_id", id)
	}()
}

func (d *Dispatcher) render(ctx context.Context, anchor string, spec chart.Spec) (h Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.renderer.Render(ctx, anchor, spec)
}

// apply records h unless a newer render for anchor has already landed.
func (d *Dispatcher) apply(anchor string, seq uint64, h Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq < d.applied[anchor] {
		return false
	}
	d.applied[anchor] = seq
	if h != nil {
		d.handles[anchor] = h
	}
	return true
}

// Wait blocks until every started render has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Handle returns the view most recently rendered at anchor.
func (d *Dispatcher) Handle(anchor string) (Handle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, ok := d.handles[anchor]
	return h, ok
}

// UpdateParameter sets a bound parameter on the view at anchor.
func (d *Dispatcher) UpdateParameter(ctx context.Context, anchor, name string, value any) error {
	h, ok := d.Handle(anchor)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandle, anchor)
	}
	if err := h.UpdateParameter(ctx, name, value); err != nil {
		return fmt.Errorf("update %s on %s: %w", name, anchor, err)
	}
	return nil
}
