package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dtkav/redditviz/internal/dataset"
)

// Share is one category's part of the visible posts.
type Share struct {
	Sentiment dataset.Sentiment `json:"sentiment"`
	Count     int               `json:"count"`
	Percent   int               `json:"percent"`
}

// Summary is the sentiment breakdown of a grid. Total counts the posts with
// a known category; Unknown counts the rest, which take no share.
type Summary struct {
	Total   int     `json:"total"`
	Unknown int     `json:"unknown"`
	Empty   bool    `json:"empty"`
	Shares  []Share `json:"shares"`
}

// Summarize counts each category and rounds its share half up. An empty grid
// yields zero shares.
func Summarize(cells []Cell) Summary {
	counts := make(map[dataset.Sentiment]int)
	s := Summary{Empty: len(cells) == 0}
	for _, c := range cells {
		if c.Post.Sentiment.Rank() >= len(dataset.Sentiments) {
			s.Unknown++
			continue
		}
		counts[c.Post.Sentiment]++
		s.Total++
	}

	for _, cat := range dataset.Sentiments {
		s.Shares = append(s.Shares, Share{
			Sentiment: cat,
			Count:     counts[cat],
			Percent:   percent(counts[cat], s.Total),
		})
	}
	return s
}

func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(count)/float64(total)*100 + 0.5))
}

// Percent returns the rounded share of a category.
func (s Summary) Percent(cat dataset.Sentiment) int {
	for _, sh := range s.Shares {
		if sh.Sentiment == cat {
			return sh.Percent
		}
	}
	return 0
}

// Text is the one-line summary shown under the grid title.
func (s Summary) Text() string {
	if s.Empty {
		return "No posts for this subreddit"
	}
	parts := make([]string, 0, len(s.Shares))
	for _, sh := range s.Shares {
		parts = append(parts, fmt.Sprintf("%d%% %s", sh.Percent, sh.Sentiment))
	}
	noun := "posts"
	if s.Total == 1 {
		noun = "post"
	}
	text := fmt.Sprintf("%s (%s %s)", strings.Join(parts, " · "), humanize.Comma(int64(s.Total)), noun)
	if s.Unknown > 0 {
		text += fmt.Sprintf(", %s unlabelled", humanize.Comma(int64(s.Unknown)))
	}
	return text
}

// Title is the heading of the grid for subreddit.
func Title(subreddit string) string {
	if subreddit == "" {
		return "Sentiment of posts"
	}
	return "Sentiment of posts in r/" + subreddit
}
