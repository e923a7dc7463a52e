package page

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dtkav/redditviz/internal/chart"
	"github.com/dtkav/redditviz/internal/viewport"
)

func TestLayoutAnchors(t *testing.T) {
	doc, err := Layout([]string{"AskReddit", "technology"})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	for _, anchor := range []string{
		"#vis-popularity", "#vis-sentiment-subreddit", "#vis-sentiment-score",
		"#vis-engagement-sentiment", "#vis-weather", "#visualization-area",
		"#subreddit-select", "#grid-title", "#grid-summary",
	} {
		if !doc.Has(anchor) {
			t.Errorf("layout missing %s", anchor)
		}
	}
	if n := doc.Count(".subreddit-button"); n != 2 {
		t.Errorf("subreddit buttons = %d, want 2", n)
	}
}

func TestContainerWidth(t *testing.T) {
	doc, err := Layout(nil)
	if err != nil {
		t.Fatal(err)
	}
	v := viewport.Viewport{Width: 1280}

	w, ok := doc.ContainerWidth("#vis-popularity", v)
	if !ok || w != 1280-64 {
		t.Errorf("charts container = %v, %v; want %v", w, ok, 1280-64)
	}
	w, ok = doc.ContainerWidth("#visualization-area", v)
	if !ok || w != 1280-48 {
		t.Errorf("explorer container = %v, %v; want %v", w, ok, 1280-48)
	}
	if _, ok := doc.ContainerWidth("#does-not-exist", v); ok {
		t.Error("missing anchor should not resolve")
	}
	if _, ok := doc.ContainerWidth("[[bad selector", v); ok {
		t.Error("invalid selector should not resolve")
	}
}

func TestContainerWidthWithoutSection(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(`<html><body><div id="orphan"></div></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.ContainerWidth("#orphan", viewport.Default); ok {
		t.Error("anchor outside a section should not resolve")
	}

	r := viewport.NewResolver(doc)
	if got := r.Resolve(400, "#orphan", viewport.Viewport{Width: 500}); got != 400 {
		t.Errorf("Resolve = %v, want base width", got)
	}
}

func TestPageRenderAndUpdate(t *testing.T) {
	doc, err := Layout([]string{"technology"})
	if err != nil {
		t.Fatal(err)
	}
	p := New(doc)
	ctx := context.Background()

	if _, err := p.Render(ctx, "#nowhere", chart.Spec{}); err == nil {
		t.Error("render into missing anchor should fail")
	}

	spec := chart.Weather(chart.Options{DataURL: "/data/posts.csv", Size: chart.Size{Width: 300, Height: 200}})
	h, err := p.Render(ctx, chart.AnchorWeather, spec)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := h.UpdateParameter(ctx, chart.SubredditParam, "technology"); err != nil {
		t.Fatalf("UpdateParameter failed: %v", err)
	}
	if err := h.UpdateParameter(ctx, "nope", 1); err == nil {
		t.Error("unknown parameter should fail")
	}

	got := p.Specs()[chart.AnchorWeather].Params[0].Value
	if got != "technology" {
		t.Errorf("param value = %v, want technology", got)
	}
	if spec.Params[0].Value != "" {
		t.Error("caller's spec must not be mutated")
	}
}

func TestPageWrite(t *testing.T) {
	doc, err := Layout([]string{"technology"})
	if err != nil {
		t.Fatal(err)
	}
	p := New(doc)
	spec := chart.Popularity(chart.Options{DataURL: "/data/posts.csv", Size: chart.Size{Width: 400, Height: 280}})
	if _, err := p.Render(context.Background(), chart.AnchorPopularity, spec); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = p.Write(&buf, Data{
		Title:       "Reddit sentiment",
		Subreddits:  []string{"technology"},
		Selected:    "technology",
		DebounceMS:  250,
		Width:       1280,
		GridTitle:   "r/technology",
		GridSummary: "no data",
	})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`id="vis-popularity"`,
		`class="subreddit-button active"`,
		"posts.csv",
		"Average Score",
		"DEBOUNCE_MS",
		"r/technology",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
