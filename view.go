package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/dtkav/redditviz/internal/chart"
	"github.com/dtkav/redditviz/internal/dataset"
	"github.com/dtkav/redditviz/internal/grid"
)

// panelStyle is a Lip Gloss style for panels.
var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("250")). // Light gray border
	Padding(0, 1).
	Margin(0, 1)

// activePanelStyle marks the panel that follows the keyboard.
var activePanelStyle = lipgloss.NewStyle().
	Border(lipgloss.ThickBorder()).
	BorderForeground(lipgloss.Color("39")).
	Padding(0, 1).
	Margin(0, 1)

var headerStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("4")).
	Foreground(lipgloss.Color("15")).
	Bold(true)

var mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

var titleStyle = lipgloss.NewStyle().Bold(true)

// sentimentStyles colour bubbles like the web grid.
var sentimentStyles = map[dataset.Sentiment]lipgloss.Style{
	dataset.Negative: lipgloss.NewStyle().Foreground(lipgloss.Color(grid.Colors[dataset.Negative])),
	dataset.Neutral:  lipgloss.NewStyle().Foreground(lipgloss.Color(grid.Colors[dataset.Neutral])),
	dataset.Positive: lipgloss.NewStyle().Foreground(lipgloss.Color(grid.Colors[dataset.Positive])),
}

func sentimentStyle(s dataset.Sentiment) lipgloss.Style {
	if st, ok := sentimentStyles[s]; ok {
		return st
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(grid.Color(s)))
}

const (
	bubble       = "●"
	activeBubble = "◉"
	tooltipWidth = 48
)

// renderHeader shows the subreddit, its weather and post counts.
func (m *model) renderHeader() string {
	sub := m.selected()
	if sub == "" {
		return headerStyle.Render("No posts loaded")
	}
	st, _ := m.data.StatsFor(sub)
	header := fmt.Sprintf("r/%s %s | Posts: %s of %s | Avg sentiment: %+.3f | %d/%d",
		sub, chart.WeatherEmoji(st.AvgSentiment),
		humanize.Comma(int64(st.Posts)), humanize.Comma(int64(m.data.Len())),
		st.AvgSentiment, m.subIdx+1, len(m.subs))
	return headerStyle.Render(truncate.StringWithTail(header, uint(max(m.winWidth, 1)), "…"))
}

// renderGrid draws one glyph per bubble, Columns glyphs per row.
func (m *model) renderGrid() string {
	g := m.surface.grid
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.surface.title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.surface.summary.Text()))
	b.WriteString("\n\n")

	if len(g.Cells) == 0 {
		b.WriteString(mutedStyle.Render("No posts"))
		return panelStyle.Render(b.String())
	}

	cols := max(1, g.Columns)
	for i, c := range g.Cells {
		glyph := bubble
		style := sentimentStyle(c.Post.Sentiment)
		if i == m.active {
			glyph = activeBubble
			style = style.Bold(true).Reverse(true)
		}
		b.WriteString(style.Render(glyph))
		if (i+1)%cols == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.renderLegend())
	return activePanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *model) renderLegend() string {
	parts := make([]string, 0, len(dataset.Sentiments))
	for _, s := range dataset.Sentiments {
		parts = append(parts, sentimentStyle(s).Render(bubble)+" "+s.Label())
	}
	return strings.Join(parts, "  ")
}

// renderTooltip shows the active bubble's tooltip, wrapped to the panel.
func (m *model) renderTooltip() string {
	tip, ok := m.surface.tooltip(m.active)
	if !ok {
		return panelStyle.Render(mutedStyle.Render("Nothing selected"))
	}
	width := min(tooltipWidth, max(20, m.winWidth-4))
	body := fmt.Sprintf("%s · %s\n\n%s\n\n%s\n\nScore: %s · Comments: %s",
		sentimentStyle(dataset.Sentiment(strings.ToLower(tip.Category))).Render(tip.Category),
		tip.Date,
		titleStyle.Render(wordwrap.String(tip.Title, width)),
		wordwrap.String(tip.Excerpt, width),
		tip.Score, tip.Comments)
	return panelStyle.Width(width + 2).Render(body)
}

// renderSubreddits lists every subreddit with its weather, marking the
// selected one.
func (m *model) renderSubreddits() string {
	var b strings.Builder
	selected := m.selected()
	for _, s := range m.data.Stats() {
		line := fmt.Sprintf("%s r/%s", chart.WeatherEmoji(s.AvgSentiment), s.Subreddit)
		if s.Subreddit == selected {
			line = titleStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderGridLayout arranges panels in a grid
func renderGridLayout(panels []string, columns int) string {
	if len(panels) == 0 {
		return ""
	}

	var rows []string
	for rowIdx := 0; rowIdx < len(panels); rowIdx += columns {
		end := min(rowIdx+columns, len(panels))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panels[rowIdx:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// View renders the complete UI.
func (m *model) View() string {
	header := m.renderHeader()
	instructions := m.help.View(m.keys)

	panels := []string{m.renderGrid(), m.renderTooltip(), m.renderSubreddits()}
	widest := 0
	for _, p := range panels {
		widest = max(widest, lipgloss.Width(p))
	}
	columns := max(1, m.winWidth/max(1, widest))

	return header + "\n" + renderGridLayout(panels, columns) + "\n" + instructions
}
