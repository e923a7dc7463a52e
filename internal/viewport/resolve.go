package viewport

import "math"

// Containers reports the inner width of the layout section that encloses an
// anchor. ok is false when the anchor or its section does not exist.
type Containers interface {
	ContainerWidth(anchor string, v Viewport) (width float64, ok bool)
}

// Breakpoints and allowances of the two-column page layout.
const (
	NarrowBreakpoint = 900
	NarrowCap        = 560
	SidePanel        = 320
	Gap              = 48
	MidBreakpoint    = 1280
	MidCap           = 420
)

// Resolver adjusts a chart's base width to the space its section leaves.
type Resolver struct {
	containers Containers
}

// NewResolver returns a resolver over the given layout. A nil layout makes
// every lookup fail soft.
func NewResolver(c Containers) *Resolver {
	return &Resolver{containers: c}
}

// Resolve returns the width to render the chart at anchor with. A missing
// anchor or section yields base unchanged.
func (r *Resolver) Resolve(base float64, anchor string, v Viewport) float64 {
	if r == nil || r.containers == nil {
		return base
	}
	container, ok := r.containers.ContainerWidth(anchor, v)
	if !ok {
		return base
	}

	if v.Width < NarrowBreakpoint {
		return math.Min(NarrowCap, container)
	}

	remaining := math.Max(0, container-SidePanel-Gap)
	w := math.Min(base, remaining)
	if v.Width < MidBreakpoint {
		w = math.Min(w, MidCap)
	}
	return w
}

// Fixed is a Containers that reports the same inset for every known anchor.
type Fixed struct {
	Anchors map[string]float64 // anchor -> horizontal inset in px
}

func (f Fixed) ContainerWidth(anchor string, v Viewport) (float64, bool) {
	inset, ok := f.Anchors[anchor]
	if !ok {
		return 0, false
	}
	return math.Max(0, v.Width-inset), true
}
