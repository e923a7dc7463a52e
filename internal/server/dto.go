package server

import (
	"github.com/dtkav/redditviz/internal/dataset"
	"github.com/dtkav/redditviz/internal/grid"
)

type GridResponse struct {
	Subreddit   string         `json:"subreddit"`
	Title       string         `json:"title"`
	Summary     grid.Summary   `json:"summary"`
	SummaryText string         `json:"summary_text"`
	Box         grid.Box       `json:"box"`
	Columns     int            `json:"columns"`
	Rows        int            `json:"rows"`
	Cells       []grid.Cell    `json:"cells"`
	Tooltips    []grid.Tooltip `json:"tooltips"`
	SVG         string         `json:"svg"`
}

type SubredditResponse struct {
	Name          string  `json:"name"`
	Posts         int     `json:"posts"`
	AvgSentiment  float64 `json:"avg_sentiment"`
	AvgEngagement float64 `json:"avg_engagement"`
	Weather       string  `json:"weather"`
}

type SubredditsResponse struct {
	Subreddits []SubredditResponse `json:"subreddits"`
	Total      int                 `json:"total"`
}

func subredditResponse(s dataset.SubredditStats, weather string) SubredditResponse {
	return SubredditResponse{
		Name:          s.Subreddit,
		Posts:         s.Posts,
		AvgSentiment:  s.AvgSentiment,
		AvgEngagement: s.AvgEngagement,
		Weather:       weather,
	}
}
