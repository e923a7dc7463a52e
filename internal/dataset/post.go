// Package dataset holds the Reddit post records and loads them from CSV.
package dataset

import (
	"sort"
	"strings"
	"time"
)

// Sentiment is the categorical sentiment label of a post.
type Sentiment string

const (
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
	Positive Sentiment = "positive"
)

// Sentiments lists the categories in their fixed grouping order.
var Sentiments = []Sentiment{Negative, Neutral, Positive}

// Rank returns the position of s in the fixed category order. Unknown labels
// rank after every known one.
func (s Sentiment) Rank() int {
	for i, known := range Sentiments {
		if s == known {
			return i
		}
	}
	return len(Sentiments)
}

// Label is the display form of the category ("Negative", ...).
func (s Sentiment) Label() string {
	if s == "" {
		return "Unknown"
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Post is one row of the dataset. Absent optional values are the zero time,
// a nil pointer or an empty string.
type Post struct {
	Subreddit      string    `json:"subreddit"`
	Date           time.Time `json:"date_utc"`
	Score          *int      `json:"score,omitempty"`
	NumComments    *int      `json:"num_comments,omitempty"`
	SentimentScore float64   `json:"sentiment_score"`
	Sentiment      Sentiment `json:"sentiment_name"`
	Title          string    `json:"title"`
	Body           string    `json:"body,omitempty"`
}

// Engagement is score plus comment count; absent values count as zero.
func (p Post) Engagement() int {
	n := 0
	if p.Score != nil {
		n += *p.Score
	}
	if p.NumComments != nil {
		n += *p.NumComments
	}
	return n
}

// Dataset is the full set of posts, loaded once and never mutated.
type Dataset struct {
	posts []Post
}

// New wraps posts in a Dataset. The slice is copied.
func New(posts []Post) *Dataset {
	cp := make([]Post, len(posts))
	copy(cp, posts)
	return &Dataset{posts: cp}
}

// Posts returns a copy of every post.
func (d *Dataset) Posts() []Post {
	cp := make([]Post, len(d.posts))
	copy(cp, d.posts)
	return cp
}

// Len is the number of loaded posts.
func (d *Dataset) Len() int { return len(d.posts) }

// Filter returns the posts of one subreddit, in load order.
func (d *Dataset) Filter(subreddit string) []Post {
	var out []Post
	for _, p := range d.posts {
		if p.Subreddit == subreddit {
			out = append(out, p)
		}
	}
	return out
}

// Subreddits returns the distinct subreddit names, sorted.
func (d *Dataset) Subreddits() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range d.posts {
		if p.Subreddit == "" || seen[p.Subreddit] {
			continue
		}
		seen[p.Subreddit] = true
		names = append(names, p.Subreddit)
	}
	sort.Strings(names)
	return names
}

// Has reports whether any post belongs to subreddit.
func (d *Dataset) Has(subreddit string) bool {
	for _, p := range d.posts {
		if p.Subreddit == subreddit {
			return true
		}
	}
	return false
}
