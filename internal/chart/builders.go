package chart

import "fmt"

// Options parameterize every builder.
type Options struct {
	DataURL string
	Size    Size
	// Subreddit is the initial value of the weather chart's selection.
	Subreddit string
}

// Fixed values shared by the panels.
const (
	SelectedOpacity   = 0.9
	UnselectedOpacity = 0.15

	PopularityFromYear = 2020
	PopularityToYear   = 2025

	SelectionParam = "subreddit_select"
	SubredditParam = "selected_subreddit"
)

func base(o Options) Spec {
	return Spec{
		Schema: Schema,
		Data: &Data{
			URL:    o.DataURL,
			Format: &DataFormat{Type: "csv", Parse: map[string]string{"date_utc": "date"}},
		},
		Width:  o.Size.Width,
		Height: o.Size.Height,
	}
}

// Popularity is the yearly average score per subreddit.
func Popularity(o Options) Spec {
	s := base(o)
	s.Transform = []Transform{
		{Filter: fmt.Sprintf("year(datum.date_utc) >= %d && year(datum.date_utc) <= %d",
			PopularityFromYear, PopularityToYear)},
		{TimeUnit: "year", Field: "date_utc", As: "year"},
	}
	s.Mark = &Mark{Type: "line", Point: true}
	s.Encoding = &Encoding{
		X: &Channel{Field: "year", Type: "temporal", Title: "Year"},
		Y: &Channel{
			Aggregate: "average", Field: "score", Type: "quantitative",
			Title: "Average Score",
			Scale: &Scale{Domain: []float64{50000, 200000}},
		},
		Color: &Channel{Field: "subreddit", Type: "nominal", Title: "Subreddit"},
		Tooltip: []Channel{
			{Field: "year", Type: "temporal", Title: "Year", TimeUnit: "year"},
			{Field: "subreddit", Type: "nominal", Title: "Subreddit"},
			{Aggregate: "average", Field: "score", Type: "quantitative", Title: "Avg Score", Format: ",.0f"},
		},
	}
	return s
}

// SentimentBySubreddit is a bar per subreddit on a diverging [-1,1] scale.
func SentimentBySubreddit(o Options) Spec {
	s := base(o)
	s.Mark = &Mark{Type: "bar"}
	s.Encoding = &Encoding{
		X: &Channel{Field: "subreddit", Type: "nominal", Title: "Subreddit", Sort: "-y"},
		Y: &Channel{
			Aggregate: "mean", Field: "sentiment_score", Type: "quantitative",
			Title: "Average sentiment score (-1 = negative, +1 = positive)",
		},
		Color: &Channel{
			Aggregate: "mean", Field: "sentiment_score", Type: "quantitative",
			Title: "Average sentiment",
			Scale: &Scale{Scheme: "redblue", Domain: []float64{-1, 1}},
		},
		Tooltip: []Channel{
			{Field: "subreddit", Type: "nominal", Title: "Subreddit"},
			{Aggregate: "mean", Field: "sentiment_score", Type: "quantitative", Title: "Average sentiment", Format: ".3f"},
			{Aggregate: "count", Type: "quantitative", Title: "Number of posts"},
		},
	}
	return s
}

// SentimentVsScore is a scatterplot whose legend toggles subreddits; the
// unselected ones fade out.
func SentimentVsScore(o Options) Spec {
	s := base(o)
	s.Params = []Param{{
		Name:   SelectionParam,
		Select: &SelectionConfig{Type: "point", Fields: []string{"subreddit"}, Toggle: true},
		Bind:   "legend",
	}}
	s.Mark = &Mark{Type: "point", Filled: true}
	s.Encoding = &Encoding{
		X: &Channel{
			Field: "sentiment_score", Type: "quantitative",
			Title: "Sentiment score (-1 = negative, +1 = positive)",
		},
		Y: &Channel{
			Field: "score", Type: "quantitative",
			Title: "Post score (upvotes − downvotes)",
		},
		Color: &Channel{Field: "subreddit", Type: "nominal", Title: "Subreddit"},
		Opacity: &Channel{
			Condition: &Condition{Param: SelectionParam, Value: SelectedOpacity},
			Value:     UnselectedOpacity,
		},
		Tooltip: []Channel{
			{Field: "title", Type: "nominal", Title: "Title"},
			{Field: "subreddit", Type: "nominal", Title: "Subreddit"},
			{Field: "sentiment_score", Type: "quantitative", Title: "Sentiment score", Format: ".3f"},
			{Field: "score", Type: "quantitative", Title: "Score"},
			{Field: "num_comments", Type: "quantitative", Title: "Number of comments"},
			{Field: "date_utc", Type: "temporal", Title: "Date"},
		},
	}
	return s
}

// Bubble chart bounds.
var (
	EngagementSizeRange = []float64{50, 2000}
	EngagementXDomain   = []float64{-0.2, 0.2}
)

// EngagementVsSentiment places one bubble per subreddit by mean sentiment and
// mean engagement (score + comments).
func EngagementVsSentiment(o Options) Spec {
	s := base(o)
	s.Transform = []Transform{
		{Calculate: "datum.score + datum.num_comments", As: "engagement"},
		{
			Aggregate: []AggregateOp{
				{Op: "mean", Field: "engagement", As: "avg_engagement"},
				{Op: "mean", Field: "sentiment_score", As: "avg_sentiment"},
			},
			GroupBy: []string{"subreddit"},
		},
	}
	s.Mark = &Mark{Type: "circle", Opacity: ptr(1.0)}
	s.Encoding = &Encoding{
		X: &Channel{
			Field: "avg_sentiment", Type: "quantitative",
			Title: "Average Sentiment (Negative → Positive)",
			Scale: &Scale{Domain: EngagementXDomain},
		},
		Y: &Channel{Field: "avg_engagement", Type: "quantitative", Title: "Average Engagement"},
		Size: &Channel{
			Field: "avg_engagement", Type: "quantitative",
			Title:  "Bubble Size (Avg Engagement)",
			Legend: NoLegend,
			Scale:  &Scale{Range: EngagementSizeRange},
		},
		Color: &Channel{
			Field: "avg_sentiment", Type: "quantitative", Title: "Sentiment",
			Legend: NoLegend,
			Scale:  &Scale{Scheme: "redblue", Reverse: true},
		},
		Tooltip: []Channel{
			{Field: "subreddit", Type: "nominal", Title: "Subreddit"},
			{Field: "avg_engagement", Type: "quantitative", Title: "Avg engagement", Format: ",.0f"},
			{Field: "avg_sentiment", Type: "quantitative", Title: "Avg sentiment", Format: ".3f"},
		},
	}
	return s
}
