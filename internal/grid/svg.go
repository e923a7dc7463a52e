package grid

import (
	"fmt"
	"html"
	"strings"

	"github.com/dtkav/redditviz/internal/dataset"
)

// Colors of the sentiment categories, matching the charts' redblue scheme.
var Colors = map[dataset.Sentiment]string{
	dataset.Negative: "#d6604d",
	dataset.Neutral:  "#bababa",
	dataset.Positive: "#4393c3",
}

const unknownColor = "#999999"

// Color returns the fill of a category.
func Color(s dataset.Sentiment) string {
	if c, ok := Colors[s]; ok {
		return c
	}
	return unknownColor
}

// SVG draws the grid as a standalone <svg> element. Each bubble carries its
// tooltip as a <title> child.
func SVG(g Grid, tips []Tooltip) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" class="bubble-grid" width="%g" height="%g" viewBox="0 0 %g %g" data-subreddit="%s">`,
		g.Box.Width, g.Box.Height, g.Box.Width, g.Box.Height, html.EscapeString(g.Subreddit))

	if len(g.Cells) == 0 {
		fmt.Fprintf(&sb, `<text x="%g" y="%g" text-anchor="middle" fill="#666">No posts</text>`,
			g.Box.Width/2, g.Box.Height/2)
	}

	for i, c := range g.Cells {
		fmt.Fprintf(&sb, `<circle cx="%g" cy="%g" r="%g" fill="%s" data-index="%d" data-sentiment="%s">`,
			c.X, c.Y, g.Box.Radius, Color(c.Post.Sentiment), c.Index, html.EscapeString(string(c.Post.Sentiment)))
		if i < len(tips) {
			sb.WriteString("<title>")
			sb.WriteString(html.EscapeString(tips[i].Text()))
			sb.WriteString("</title>")
		}
		sb.WriteString("</circle>")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// Text renders the tooltip as plain multi-line text.
func (t Tooltip) Text() string {
	return strings.Join([]string{
		t.Category + " · " + t.Date,
		t.Title,
		t.Excerpt,
		"Score: " + t.Score + " · Comments: " + t.Comments,
	}, "\n")
}
