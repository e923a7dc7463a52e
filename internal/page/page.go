package page

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/dtkav/redditviz/internal/chart"
	ebd "github.com/dtkav/redditviz/internal/embed"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Data feeds the page template.
type Data struct {
	Title         string
	Subreddits    []string
	Selected      string
	Specs         map[string]chart.Spec
	DebounceMS    int
	Width         float64
	WeatherAnchor string
	WeatherParam  string
	GridTitle     string
	GridSummary   string
	GridSVG       template.HTML
}

// Page collects rendered specs for one response. It implements
// embed.Renderer; a render into an anchor the layout lacks fails.
type Page struct {
	doc *Document

	mu    sync.Mutex
	specs map[string]chart.Spec
}

// New creates an empty page over doc.
func New(doc *Document) *Page {
	return &Page{doc: doc, specs: make(map[string]chart.Spec)}
}

// View is one mounted spec. Its parameters can be updated in place.
type View struct {
	page   *Page
	anchor string
}

// Render mounts spec at anchor, replacing any earlier spec there.
func (p *Page) Render(ctx context.Context, anchor string, spec chart.Spec) (ebd.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.doc.Has(anchor) {
		return nil, fmt.Errorf("anchor %s not in layout", anchor)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.specs[anchor] = spec
	return &View{page: p, anchor: anchor}, nil
}

// UpdateParameter changes the value of a declared parameter of the view's spec.
func (v *View) UpdateParameter(ctx context.Context, name string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := v.page
	p.mu.Lock()
	defer p.mu.Unlock()

	spec, ok := p.specs[v.anchor]
	if !ok {
		return fmt.Errorf("view %s is no longer mounted", v.anchor)
	}
	params := append([]chart.Param(nil), spec.Params...)
	for i := range params {
		if params[i].Name == name {
			params[i].Value = value
			spec.Params = params
			p.specs[v.anchor] = spec
			return nil
		}
	}
	return fmt.Errorf("spec at %s has no parameter %q", v.anchor, name)
}

// Specs returns a copy of every mounted spec keyed by anchor.
func (p *Page) Specs() map[string]chart.Spec {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]chart.Spec, len(p.specs))
	for anchor, spec := range p.specs {
		out[anchor] = spec
	}
	return out
}

// Write renders the full HTML page. data.Specs defaults to the mounted specs.
func (p *Page) Write(w io.Writer, data Data) error {
	if data.Specs == nil {
		data.Specs = p.Specs()
	}
	if data.WeatherAnchor == "" {
		data.WeatherAnchor = chart.AnchorWeather
	}
	if data.WeatherParam == "" {
		data.WeatherParam = chart.SubredditParam
	}
	if err := templates.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
