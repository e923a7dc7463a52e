package chart

import "github.com/dtkav/redditviz/internal/viewport"

// Builder produces one panel's spec.
type Builder func(Options) Spec

// Panel ties a builder to the page anchor it renders into.
type Panel struct {
	Anchor    string
	Label     string
	BaseWidth float64
	Build     Builder
}

// Anchors of the declarative panels.
const (
	AnchorPopularity = "#vis-popularity"
	AnchorSentiment  = "#vis-sentiment-subreddit"
	AnchorScatter    = "#vis-sentiment-score"
	AnchorEngagement = "#vis-engagement-sentiment"
	AnchorWeather    = "#vis-weather"
)

// DefaultWidth is the width every panel asks for before resolution.
const DefaultWidth = 400

// Catalog is every declarative panel, in page order.
var Catalog = []Panel{
	{Anchor: AnchorPopularity, Label: "Popularity", BaseWidth: DefaultWidth, Build: Popularity},
	{Anchor: AnchorSentiment, Label: "Sentiment by subreddit", BaseWidth: DefaultWidth, Build: SentimentBySubreddit},
	{Anchor: AnchorScatter, Label: "Sentiment vs score", BaseWidth: DefaultWidth, Build: SentimentVsScore},
	{Anchor: AnchorEngagement, Label: "Engagement vs sentiment", BaseWidth: DefaultWidth, Build: EngagementVsSentiment},
	{Anchor: AnchorWeather, Label: "Sentiment weather", BaseWidth: DefaultWidth, Build: Weather},
}

// Lookup finds a panel by anchor.
func Lookup(anchor string) (Panel, bool) {
	for _, p := range Catalog {
		if p.Anchor == anchor {
			return p, true
		}
	}
	return Panel{}, false
}

// HeightFor is the chart height of a breakpoint tier.
func HeightFor(c viewport.Class) float64 {
	switch c {
	case viewport.Mobile:
		return 220
	case viewport.Tablet:
		return 250
	default:
		return 280
	}
}

// Resolve builds a panel's spec for a viewport, sizing it with r.
func (p Panel) Resolve(r *viewport.Resolver, v viewport.Viewport, dataURL, subreddit string) Spec {
	return p.Build(Options{
		DataURL: dataURL,
		Size: Size{
			Width:  r.Resolve(p.BaseWidth, p.Anchor, v),
			Height: HeightFor(viewport.ClassOf(v)),
		},
		Subreddit: subreddit,
	})
}
