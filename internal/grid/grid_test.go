package grid

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dtkav/redditviz/internal/dataset"
	"github.com/dtkav/redditviz/internal/viewport"
)

var desktop = viewport.Viewport{Width: 1280, Height: 800}

func intPtr(n int) *int { return &n }

func post(sub string, s dataset.Sentiment, title string) dataset.Post {
	return dataset.Post{Subreddit: sub, Sentiment: s, Title: title}
}

func TestTechnologyExample(t *testing.T) {
	posts := []dataset.Post{
		post("technology", dataset.Positive, "up"),
		post("technology", dataset.Negative, "down"),
	}
	g := Layout(posts, "technology", desktop)

	if len(g.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(g.Cells))
	}
	if g.Cells[0].Post.Sentiment != dataset.Negative || g.Cells[1].Post.Sentiment != dataset.Positive {
		t.Errorf("order = %s, %s; want negative, positive",
			g.Cells[0].Post.Sentiment, g.Cells[1].Post.Sentiment)
	}

	s := Summarize(g.Cells)
	if s.Percent(dataset.Negative) != 50 || s.Percent(dataset.Neutral) != 0 || s.Percent(dataset.Positive) != 50 {
		t.Errorf("shares = %+v, want 50/0/50", s.Shares)
	}
}

func TestLayoutStableGrouping(t *testing.T) {
	posts := []dataset.Post{
		post("a", dataset.Positive, "p1"),
		post("a", dataset.Neutral, "n1"),
		post("b", dataset.Negative, "other"),
		post("a", dataset.Negative, "neg1"),
		post("a", dataset.Positive, "p2"),
		post("a", "mixed", "m1"),
		post("a", dataset.Negative, "neg2"),
	}
	g := Layout(posts, "a", desktop)

	var titles []string
	for _, c := range g.Cells {
		titles = append(titles, c.Post.Title)
	}
	want := []string{"neg1", "neg2", "n1", "p1", "p2", "m1"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("order = %v, want %v", titles, want)
	}
	if posts[0].Title != "p1" {
		t.Error("input slice was reordered")
	}
}

func TestLayoutGeometry(t *testing.T) {
	var posts []dataset.Post
	for i := 0; i < 45; i++ {
		posts = append(posts, post("a", dataset.Neutral, ""))
	}
	g := Layout(posts, "a", desktop)

	// desktop: 400 / (2*10 + 4) = 16.67 -> 16 columns
	if g.Columns != 16 {
		t.Fatalf("columns = %d, want 16", g.Columns)
	}
	if g.Rows != 3 {
		t.Errorf("rows = %d, want 3", g.Rows)
	}
	c := g.Cells[17]
	if c.Column != 1 || c.Row != 1 {
		t.Errorf("cell 17 at (%d,%d), want (1,1)", c.Column, c.Row)
	}
	if c.X != 36 || c.Y != 36 {
		t.Errorf("cell 17 centre = (%v,%v), want (36,36)", c.X, c.Y)
	}

	seen := map[[2]int]bool{}
	for i, c := range g.Cells {
		if c.Index != i {
			t.Errorf("cell %d has index %d", i, c.Index)
		}
		key := [2]int{c.Column, c.Row}
		if seen[key] {
			t.Errorf("two posts share cell %v", key)
		}
		seen[key] = true
	}

	if got, ok := g.At(1, 1); !ok || got.Index != 17 {
		t.Errorf("At(1,1) = %v, %v", got.Index, ok)
	}
	if _, ok := g.At(15, 2); ok {
		t.Error("At past the last cell should fail")
	}
}

func TestBoxFor(t *testing.T) {
	tests := []struct {
		width float64
		want  Box
	}{
		{300, Box{Width: 260, Height: 260, Radius: 6, Padding: 3}},
		{200, Box{Width: 250, Height: 250, Radius: 6, Padding: 3}},
		{480, Box{Width: 280, Height: 280, Radius: 6, Padding: 3}},
		{600, Box{Width: 350, Height: 350, Radius: 8, Padding: 3.5}},
		{1024, Box{Width: 400, Height: 400, Radius: 10, Padding: 4}},
	}
	for _, tt := range tests {
		if got := BoxFor(viewport.Viewport{Width: tt.width}); got != tt.want {
			t.Errorf("BoxFor(%v) = %+v, want %+v", tt.width, got, tt.want)
		}
	}
	if (Box{Width: 10, Radius: 20}).Columns() != 1 {
		t.Error("columns should be at least 1")
	}
}

func TestLayoutIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	subs := []string{"AskReddit", "technology", "worldnews"}
	var posts []dataset.Post
	for i := 0; i < 300; i++ {
		posts = append(posts, dataset.Post{
			Subreddit: subs[rng.Intn(len(subs))],
			Sentiment: dataset.Sentiments[rng.Intn(3)],
			Title:     strings.Repeat("x", i%7),
		})
	}
	for _, sub := range subs {
		for _, w := range []float64{320, 700, 1440} {
			v := viewport.Viewport{Width: w}
			a := Layout(posts, sub, v)
			b := Layout(posts, sub, v)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("layout of %s at %v differs between runs", sub, w)
			}
		}
	}
}

func TestSummaryProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		n := 1 + rng.Intn(97)
		cells := make([]Cell, n)
		for i := range cells {
			cells[i].Post.Sentiment = dataset.Sentiments[rng.Intn(3)]
		}
		s := Summarize(cells)
		sum := 0
		for _, sh := range s.Shares {
			if sh.Percent < 0 || sh.Percent > 100 {
				t.Fatalf("share out of range: %+v", sh)
			}
			sum += sh.Percent
		}
		if sum < 98 || sum > 102 {
			t.Fatalf("shares sum to %d for %+v", sum, s.Shares)
		}
	}
}

func TestSummaryEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.Empty || s.Total != 0 {
		t.Errorf("summary = %+v, want empty", s)
	}
	for _, sh := range s.Shares {
		if sh.Percent != 0 {
			t.Errorf("empty share = %+v, want 0", sh)
		}
	}
	if !strings.Contains(s.Text(), "No posts") {
		t.Errorf("Text = %q", s.Text())
	}
}

func TestSummaryRoundsHalfUp(t *testing.T) {
	// 1 of 8 = 12.5% -> 13
	cells := make([]Cell, 8)
	for i := range cells {
		cells[i].Post.Sentiment = dataset.Positive
	}
	cells[0].Post.Sentiment = dataset.Negative
	s := Summarize(cells)
	if s.Percent(dataset.Negative) != 13 || s.Percent(dataset.Positive) != 88 {
		t.Errorf("shares = %+v, want 13/0/88", s.Shares)
	}
	if !strings.Contains(s.Text(), "13% negative") || !strings.Contains(s.Text(), "(8 posts)") {
		t.Errorf("Text = %q", s.Text())
	}
}

func TestSummaryIgnoresUnknownLabels(t *testing.T) {
	cells := make([]Cell, 4)
	for i := range cells {
		cells[i].Post.Sentiment = dataset.Positive
	}
	cells[3].Post.Sentiment = "mixed"

	s := Summarize(cells)
	if s.Total != 3 || s.Unknown != 1 || s.Empty {
		t.Errorf("summary = %+v, want 3 known and 1 unknown", s)
	}
	sum := 0
	for _, sh := range s.Shares {
		sum += sh.Percent
	}
	if sum != 100 || s.Percent(dataset.Positive) != 100 {
		t.Errorf("shares = %+v, want positive 100", s.Shares)
	}
	if !strings.Contains(s.Text(), "(3 posts), 1 unlabelled") {
		t.Errorf("Text = %q", s.Text())
	}

	only := Summarize([]Cell{{Post: dataset.Post{Sentiment: "mixed"}}})
	for _, sh := range only.Shares {
		if sh.Percent != 0 {
			t.Errorf("share with no known posts = %+v, want 0", sh)
		}
	}
}

func TestTooltipPlaceholders(t *testing.T) {
	tip := TooltipFor(dataset.Post{})
	if tip.Date != Placeholder || tip.Score != Placeholder || tip.Comments != Placeholder {
		t.Errorf("tooltip = %+v, want placeholders", tip)
	}
	if tip.Title != UntitledText || tip.Excerpt != EmptyBodyText || tip.Category != Placeholder {
		t.Errorf("tooltip = %+v, want placeholders", tip)
	}

	tip = TooltipFor(dataset.Post{
		Sentiment:   dataset.Positive,
		Date:        time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC),
		Title:       "Hello",
		Body:        "short",
		Score:       intPtr(12345),
		NumComments: intPtr(0),
	})
	want := Tooltip{
		Category: "Positive", Date: "Jul 4, 2023", Title: "Hello",
		Excerpt: "short", Score: "12,345", Comments: "0",
	}
	if tip != want {
		t.Errorf("tooltip = %+v, want %+v", tip, want)
	}
}

func TestExcerpt(t *testing.T) {
	exact := strings.Repeat("é", ExcerptLimit)
	if Excerpt(exact) != exact {
		t.Error("body at the limit should not be cut")
	}
	long := strings.Repeat("é", ExcerptLimit+1)
	got := Excerpt(long)
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("cut body should end with ellipsis")
	}
	if n := len([]rune(strings.TrimSuffix(got, Ellipsis))); n != ExcerptLimit {
		t.Errorf("excerpt has %d characters, want %d", n, ExcerptLimit)
	}
}

func TestSVG(t *testing.T) {
	posts := []dataset.Post{
		post("a", dataset.Positive, "<script>"),
		post("a", dataset.Negative, "plain"),
	}
	g := Layout(posts, "a", desktop)
	out := SVG(g, Tooltips(g.Cells))

	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	if strings.Contains(out, "<script>") {
		t.Error("tooltip text must be escaped")
	}
	if !strings.Contains(out, Colors[dataset.Negative]) {
		t.Error("negative colour missing")
	}

	empty := SVG(Layout(posts, "none", desktop), nil)
	if !strings.Contains(empty, "No posts") || strings.Contains(empty, "<circle") {
		t.Errorf("empty svg = %s", empty)
	}
}
