package grid

import (
	"github.com/dustin/go-humanize"

	"github.com/dtkav/redditviz/internal/dataset"
)

const (
	// ExcerptLimit is the maximum number of characters of body text shown.
	ExcerptLimit = 500
	Ellipsis     = "…"

	Placeholder      = "N/A"
	UntitledText     = "(untitled)"
	EmptyBodyText    = "(no text)"
	tooltipDateStyle = "Jan 2, 2006"
)

// Tooltip is the hover content of one bubble. Every field is filled.
type Tooltip struct {
	Category string `json:"category"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Score    string `json:"score"`
	Comments string `json:"comments"`
}

// TooltipFor builds the tooltip of p, substituting placeholders for absent
// values.
func TooltipFor(p dataset.Post) Tooltip {
	t := Tooltip{
		Category: p.Sentiment.Label(),
		Date:     Placeholder,
		Title:    p.Title,
		Excerpt:  Excerpt(p.Body),
		Score:    formatCount(p.Score),
		Comments: formatCount(p.NumComments),
	}
	if p.Sentiment == "" {
		t.Category = Placeholder
	}
	if !p.Date.IsZero() {
		t.Date = p.Date.Format(tooltipDateStyle)
	}
	if t.Title == "" {
		t.Title = UntitledText
	}
	return t
}

// Tooltips builds the tooltip of every cell, in cell order.
func Tooltips(cells []Cell) []Tooltip {
	out := make([]Tooltip, len(cells))
	for i, c := range cells {
		out[i] = TooltipFor(c.Post)
	}
	return out
}

// Excerpt caps body at ExcerptLimit characters, marking a cut with Ellipsis.
func Excerpt(body string) string {
	if body == "" {
		return EmptyBodyText
	}
	runes := []rune(body)
	if len(runes) <= ExcerptLimit {
		return body
	}
	return string(runes[:ExcerptLimit]) + Ellipsis
}

func formatCount(n *int) string {
	if n == nil {
		return Placeholder
	}
	return humanize.Comma(int64(*n))
}
