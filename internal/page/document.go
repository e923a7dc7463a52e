// Package page owns the dashboard's HTML: the layout the charts are mounted
// in, and a renderer that collects specs into a servable page.
package page

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/dtkav/redditviz/internal/viewport"
)

// InsetAttr is the section attribute holding its horizontal padding in px.
const InsetAttr = "data-inset"

// Document is a parsed page layout. It answers which anchors exist and how
// wide the section around them is.
type Document struct {
	root *html.Node
}

// ParseDocument parses an HTML layout.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return &Document{root: root}, nil
}

// Layout renders the built-in dashboard layout for the given subreddits and
// parses it.
func Layout(subreddits []string) (*Document, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "layout", Data{Subreddits: subreddits})
	if err != nil {
		return nil, fmt.Errorf("render layout: %w", err)
	}
	return ParseDocument(&buf)
}

func (d *Document) find(selector string) *html.Node {
	if d == nil || d.root == nil {
		return nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return cascadia.Query(d.root, sel)
}

// Has reports whether selector matches an element.
func (d *Document) Has(selector string) bool {
	return d.find(selector) != nil
}

// Count returns how many elements match selector.
func (d *Document) Count(selector string) int {
	if d == nil || d.root == nil {
		return 0
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return 0
	}
	return len(cascadia.QueryAll(d.root, sel))
}

// ContainerWidth implements viewport.Containers: the width of the nearest
// <section> enclosing anchor, minus its inset.
func (d *Document) ContainerWidth(anchor string, v viewport.Viewport) (float64, bool) {
	n := d.find(anchor)
	if n == nil {
		return 0, false
	}
	section := ancestor(n, "section")
	if section == nil {
		return 0, false
	}
	return math.Max(0, v.Width-inset(section)), true
}

func ancestor(n *html.Node, tag string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return p
		}
	}
	return nil
}

func inset(n *html.Node) float64 {
	for _, a := range n.Attr {
		if a.Key != InsetAttr {
			continue
		}
		f, err := strconv.ParseFloat(a.Val, 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	}
	return 0
}
