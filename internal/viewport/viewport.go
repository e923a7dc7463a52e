// Package viewport describes the display size and resolves chart widths
// against the page layout.
package viewport

import "fmt"

// Viewport is a snapshot of the window size in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Default is used when the client does not report its size.
var Default = Viewport{Width: 1280, Height: 800}

func (v Viewport) String() string {
	return fmt.Sprintf("%.0fx%.0f", v.Width, v.Height)
}

// Class is the breakpoint tier of a viewport.
type Class int

const (
	Desktop Class = iota
	Tablet
	Mobile
)

const (
	MobileMax = 480
	TabletMax = 768
)

func (c Class) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// ClassOf buckets a viewport by width.
func ClassOf(v Viewport) Class {
	switch {
	case v.Width <= MobileMax:
		return Mobile
	case v.Width <= TabletMax:
		return Tablet
	default:
		return Desktop
	}
}

// FromTerminal approximates a pixel viewport for a terminal of cols x rows
// character cells.
func FromTerminal(cols, rows int) Viewport {
	return Viewport{Width: float64(cols) * CellWidth, Height: float64(rows) * CellHeight}
}

// Approximate size of one terminal character cell in pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)
