package chart

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dtkav/redditviz/internal/viewport"
)

func opts() Options {
	return Options{DataURL: "/data/posts.csv", Size: Size{Width: 400, Height: 280}, Subreddit: "technology"}
}

func TestWeatherEmojiBins(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{0.9, "☀️"},
		{0.3, "🌤️"}, // exactly on a threshold falls to the lower bin
		{0.2, "⛅"},
		{0.15, "⛅"},
		{0.1, "🌥️"},
		{0.05, "☁️"},
		{0, "☁️"},
		{-0.05, "🌦️"},
		{-0.1, "🌧️"},
		{-0.2, "⛈️"},
		{-0.3, "🌪️"},
		{-1, "🌪️"},
	}
	for _, tt := range tests {
		if got := WeatherEmoji(tt.avg); got != tt.want {
			t.Errorf("WeatherEmoji(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
	if n := len(WeatherEmojis()); n != 9 {
		t.Errorf("WeatherEmojis has %d glyphs, want 9", n)
	}
}

func TestWeatherExprMirrorsBins(t *testing.T) {
	expr := weatherExpr("avg_sentiment")
	if !strings.HasPrefix(expr, "datum.avg_sentiment > 0.3 ? '☀️'") {
		t.Errorf("unexpected expression head: %s", expr)
	}
	if strings.Count(expr, ">") != 8 {
		t.Errorf("expression should have 8 strict comparisons: %s", expr)
	}
	if strings.Contains(expr, ">=") {
		t.Errorf("expression must use strict comparisons: %s", expr)
	}
	if !strings.HasSuffix(expr, "'🌪️'") {
		t.Errorf("expression should end with the floor glyph: %s", expr)
	}
}

func TestScatterOpacity(t *testing.T) {
	s := SentimentVsScore(opts())
	if len(s.Params) != 1 || s.Params[0].Name != SelectionParam || s.Params[0].Bind != "legend" {
		t.Fatalf("params = %+v", s.Params)
	}
	op := s.Encoding.Opacity
	if op.Condition.Value != 0.9 || op.Value != 0.15 {
		t.Errorf("opacity = %+v / %v, want 0.9 / 0.15", op.Condition.Value, op.Value)
	}
}

func TestEngagementSpecJSON(t *testing.T) {
	b, err := json.Marshal(EngagementVsSentiment(opts()))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}

	transforms := raw["transform"].([]any)
	calc := transforms[0].(map[string]any)
	if calc["calculate"] != "datum.score + datum.num_comments" || calc["as"] != "engagement" {
		t.Errorf("engagement transform = %v", calc)
	}

	enc := raw["encoding"].(map[string]any)
	size := enc["size"].(map[string]any)
	if v, ok := size["legend"]; !ok || v != nil {
		t.Errorf("size legend should be explicit null, got %v (present=%v)", v, ok)
	}
	rng := size["scale"].(map[string]any)["range"].([]any)
	if rng[0] != 50.0 || rng[1] != 2000.0 {
		t.Errorf("size range = %v", rng)
	}
	if raw["$schema"] != Schema {
		t.Errorf("$schema = %v", raw["$schema"])
	}
}

func TestSentimentBarDomain(t *testing.T) {
	s := SentimentBySubreddit(opts())
	d := s.Encoding.Color.Scale.Domain
	if len(d) != 2 || d[0] != -1 || d[1] != 1 {
		t.Errorf("color domain = %v, want [-1 1]", d)
	}
}

func TestPopularityFiltersYears(t *testing.T) {
	s := Popularity(opts())
	filter, _ := s.Transform[0].Filter.(string)
	if !strings.Contains(filter, ">= 2020") || !strings.Contains(filter, "<= 2025") {
		t.Errorf("filter = %q", filter)
	}
}

func TestWeatherLayers(t *testing.T) {
	s := Weather(opts())
	if len(s.Layer) != 3 {
		t.Fatalf("layers = %d, want 3", len(s.Layer))
	}
	if s.Params[0].Name != SubredditParam || s.Params[0].Value != "technology" {
		t.Errorf("param = %+v", s.Params[0])
	}
	if s.Layer[1].Mark.Type != "circle" || *s.Layer[1].Mark.Opacity >= 1 {
		t.Errorf("second layer should be a translucent circle: %+v", s.Layer[1].Mark)
	}
	if s.Layer[2].Mark.Type != "text" || s.Layer[2].Encoding.Text.Field != "emoji" {
		t.Errorf("third layer should draw the emoji: %+v", s.Layer[2])
	}
	for _, l := range s.Layer {
		if l.Schema != "" || l.Data != nil {
			t.Error("layer children must not repeat $schema or data")
		}
	}
}

func TestValueParamAlwaysDeclaresValue(t *testing.T) {
	o := opts()
	o.Subreddit = ""
	b, err := json.Marshal(Weather(o))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `{"name":"selected_subreddit","value":""}`) {
		t.Errorf("weather params missing empty value: %s", b)
	}

	b, err = json.Marshal(SentimentVsScore(opts()))
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Params []map[string]any `json:"params"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded.Params[0]["value"]; ok {
		t.Errorf("selection param should not carry a value: %v", decoded.Params[0])
	}
	if _, ok := decoded.Params[0]["select"]; !ok {
		t.Errorf("selection param lost its select: %v", decoded.Params[0])
	}
}

func TestCatalogResolve(t *testing.T) {
	if len(Catalog) != 5 {
		t.Fatalf("catalog has %d panels", len(Catalog))
	}
	seen := map[string]bool{}
	for _, p := range Catalog {
		if seen[p.Anchor] {
			t.Errorf("duplicate anchor %s", p.Anchor)
		}
		seen[p.Anchor] = true
	}

	r := viewport.NewResolver(viewport.Fixed{Anchors: map[string]float64{AnchorPopularity: 0}})
	p, ok := Lookup(AnchorPopularity)
	if !ok {
		t.Fatal("popularity panel missing")
	}
	s := p.Resolve(r, viewport.Viewport{Width: 375, Height: 700}, "/d.csv", "")
	if s.Width != 375 || s.Height != 220 {
		t.Errorf("mobile size = %vx%v, want 375x220", s.Width, s.Height)
	}
	if s.Data.URL != "/d.csv" {
		t.Errorf("data url = %q", s.Data.URL)
	}

	if _, ok := Lookup("#nope"); ok {
		t.Error("unexpected panel for unknown anchor")
	}
}
