package chart

import (
	"fmt"
	"strings"
)

type weatherBin struct {
	above float64
	emoji string
}

// weatherBins is checked top to bottom with a strict > comparison; a value
// matching no bin gets weatherFloor.
var weatherBins = []weatherBin{
	{0.3, "☀️"},
	{0.2, "🌤️"},
	{0.1, "⛅"},
	{0.05, "🌥️"},
	{-0.05, "☁️"},
	{-0.1, "🌦️"},
	{-0.2, "🌧️"},
	{-0.3, "⛈️"},
}

const weatherFloor = "🌪️"

// WeatherEmoji maps an average sentiment to its weather glyph.
func WeatherEmoji(avg float64) string {
	for _, b := range weatherBins {
		if avg > b.above {
			return b.emoji
		}
	}
	return weatherFloor
}

// WeatherEmojis lists all nine glyphs from sunniest to stormiest.
func WeatherEmojis() []string {
	out := make([]string, 0, len(weatherBins)+1)
	for _, b := range weatherBins {
		out = append(out, b.emoji)
	}
	return append(out, weatherFloor)
}

// weatherExpr is the Vega expression form of WeatherEmoji over field.
func weatherExpr(field string) string {
	var sb strings.Builder
	for _, b := range weatherBins {
		fmt.Fprintf(&sb, "datum.%s > %g ? '%s' : ", field, b.above, b.emoji)
	}
	fmt.Fprintf(&sb, "'%s'", weatherFloor)
	return sb.String()
}

// Weather layers a yearly sentiment trend, a large sentiment-coloured circle
// and the weather emoji for a single subreddit. The subreddit is the
// SubredditParam parameter, so the host can switch it without re-embedding.
func Weather(o Options) Spec {
	s := base(o)
	s.Params = []Param{{Name: SubredditParam, Value: o.Subreddit}}
	s.Transform = []Transform{{Filter: "datum.subreddit === " + SubredditParam}}

	cx, cy := o.Size.Width/2, o.Size.Height/2
	diameter := min(o.Size.Width, o.Size.Height) * 0.8
	averaged := []Transform{{
		Aggregate: []AggregateOp{
			{Op: "mean", Field: "sentiment_score", As: "avg_sentiment"},
			{Op: "count", As: "posts"},
		},
	}}

	trend := Spec{
		Transform: []Transform{{TimeUnit: "year", Field: "date_utc", As: "year"}},
		Mark:      &Mark{Type: "line", Point: true, StrokeWidth: 2},
		Encoding: &Encoding{
			X: &Channel{Field: "year", Type: "temporal", Title: "Year"},
			Y: &Channel{
				Aggregate: "mean", Field: "sentiment_score", Type: "quantitative",
				Title: "Average sentiment",
				Scale: &Scale{Domain: []float64{-1, 1}},
			},
			Color: &Channel{Value: "#888888"},
		},
	}

	circle := Spec{
		Transform: averaged,
		Mark:      &Mark{Type: "circle", Opacity: ptr(0.35), Size: diameter * diameter, Tooltip: true},
		Encoding: &Encoding{
			X: &Channel{Value: cx},
			Y: &Channel{Value: cy},
			Color: &Channel{
				Field: "avg_sentiment", Type: "quantitative", Title: "Average sentiment",
				Legend: NoLegend,
				Scale:  &Scale{Scheme: "redblue", Domain: []float64{-1, 1}},
			},
			Tooltip: []Channel{
				{Field: "avg_sentiment", Type: "quantitative", Title: "Average sentiment", Format: ".3f"},
				{Field: "posts", Type: "quantitative", Title: "Posts"},
			},
		},
	}

	glyph := Spec{
		Transform: append(append([]Transform{}, averaged...),
			Transform{Calculate: weatherExpr("avg_sentiment"), As: "emoji"}),
		Mark: &Mark{Type: "text", FontSize: diameter / 2},
		Encoding: &Encoding{
			X:    &Channel{Value: cx},
			Y:    &Channel{Value: cy},
			Text: &Channel{Field: "emoji", Type: "nominal"},
		},
	}

	s.Layer = []Spec{trend, circle, glyph}
	return s
}
