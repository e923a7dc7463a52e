package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{
	"subreddit", "date_utc", "score", "num_comments",
	"sentiment_score", "sentiment_name", "title",
}

// bodyColumns are tried in order for the optional post text.
var bodyColumns = []string{"body", "selftext", "text"}

// LoadFile reads the CSV at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// Load parses posts from CSV. Header names are matched case-insensitively.
// Rows whose sentiment_score cannot be read are skipped; other unparsable
// values are treated as absent.
func Load(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columnMap := make(map[string]int)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := columnMap[name]; !dup {
			columnMap[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := columnMap[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	bodyCol := -1
	for _, col := range bodyColumns {
		if i, ok := columnMap[col]; ok {
			bodyCol = i
			break
		}
	}

	var posts []Post
	skipped := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		p, ok := parseRow(record, columnMap, bodyCol)
		if !ok {
			skipped++
			continue
		}
		posts = append(posts, p)
	}

	if skipped > 0 {
		slog.Warn("skipped unreadable rows", "count", skipped)
	}
	slog.Debug("dataset loaded", "posts", len(posts))
	return &Dataset{posts: posts}, nil
}

func parseRow(record []string, columnMap map[string]int, bodyCol int) (Post, bool) {
	field := func(name string) string {
		i := columnMap[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	sentiment, err := strconv.ParseFloat(field("sentiment_score"), 64)
	if err != nil || math.IsNaN(sentiment) {
		return Post{}, false
	}

	p := Post{
		Subreddit:      field("subreddit"),
		Date:           parseDate(field("date_utc")),
		Score:          parseInt(field("score")),
		NumComments:    parseInt(field("num_comments")),
		SentimentScore: sentiment,
		Sentiment:      Sentiment(strings.ToLower(field("sentiment_name"))),
		Title:          field("title"),
	}
	if bodyCol >= 0 && bodyCol < len(record) {
		p.Body = strings.TrimSpace(record[bodyCol])
	}
	return p, true
}

// parseInt accepts integers and integral floats ("12.0"); anything else is absent.
func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := int(math.Round(f))
	return &n
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
