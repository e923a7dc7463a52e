package dataset

import "sort"

// SubredditStats aggregates one subreddit the way the engagement chart does.
type SubredditStats struct {
	Subreddit     string
	Posts         int
	AvgSentiment  float64
	AvgEngagement float64
}

// Stats returns per-subreddit averages, sorted by subreddit name. Posts
// without a subreddit are left out, as in Subreddits.
func (d *Dataset) Stats() []SubredditStats {
	type acc struct {
		n          int
		sentiment  float64
		engagement float64
	}
	sums := make(map[string]*acc)
	for _, p := range d.posts {
		if p.Subreddit == "" {
			continue
		}
		a, ok := sums[p.Subreddit]
		if !ok {
			a = &acc{}
			sums[p.Subreddit] = a
		}
		a.n++
		a.sentiment += p.SentimentScore
		a.engagement += float64(p.Engagement())
	}

	out := make([]SubredditStats, 0, len(sums))
	for name, a := range sums {
		out = append(out, SubredditStats{
			Subreddit:     name,
			Posts:         a.n,
			AvgSentiment:  a.sentiment / float64(a.n),
			AvgEngagement: a.engagement / float64(a.n),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subreddit < out[j].Subreddit })
	return out
}

// StatsFor returns the aggregate of one subreddit; ok is false when it has no posts.
func (d *Dataset) StatsFor(subreddit string) (SubredditStats, bool) {
	for _, s := range d.Stats() {
		if s.Subreddit == subreddit {
			return s, true
		}
	}
	return SubredditStats{Subreddit: subreddit}, false
}
