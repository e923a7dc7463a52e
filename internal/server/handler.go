package server

import (
	"bytes"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dtkav/redditviz/internal/chart"
	"github.com/dtkav/redditviz/internal/viewport"
)

// Handler serves the dashboard routes.
type Handler struct {
	board    *Dashboard
	dataPath string
}

// NewHandler creates a handler. dataPath is the CSV served at /data/posts.csv.
func NewHandler(board *Dashboard, dataPath string) *Handler {
	return &Handler{board: board, dataPath: dataPath}
}

func (h *Handler) GetIndex(c *gin.Context) {
	v := getViewport(c)
	var buf bytes.Buffer
	if err := h.board.WritePage(c.Request.Context(), &buf, v, c.Query("subreddit")); err != nil {
		slog.Error("error rendering page", "error", err)
		c.String(http.StatusInternalServerError, "page error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) GetSpecs(c *gin.Context) {
	v := getViewport(c)
	specs, err := h.board.Specs(v, c.Query("subreddit"))
	if err != nil {
		slog.Error("error resolving specs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Layout error"})
		return
	}
	c.JSON(http.StatusOK, specs)
}

func (h *Handler) GetSpec(c *gin.Context) {
	p, ok := chart.Lookup("#" + c.Param("anchor"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panel not found"})
		return
	}
	specs, err := h.board.Specs(getViewport(c), c.Query("subreddit"))
	if err != nil {
		slog.Error("error resolving specs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Layout error"})
		return
	}
	c.JSON(http.StatusOK, specs[p.Anchor])
}

func (h *Handler) GetGrid(c *gin.Context) {
	res := h.board.Grid(c.Request.Context(), getViewport(c), c.Query("subreddit"))
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetSubreddits(c *gin.Context) {
	stats := h.board.Data().Stats()
	res := SubredditsResponse{Subreddits: make([]SubredditResponse, 0, len(stats))}
	for _, s := range stats {
		res.Subreddits = append(res.Subreddits, subredditResponse(s, chart.WeatherEmoji(s.AvgSentiment)))
	}
	res.Total = len(res.Subreddits)
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetData(c *gin.Context) {
	if _, err := os.Stat(h.dataPath); err != nil {
		slog.Error("data file unavailable", "path", h.dataPath, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Data not found"})
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.File(h.dataPath)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"posts":  h.board.Data().Len(),
	})
}

func getQueryFloat(name string, defaultValue float64, c *gin.Context) float64 {
	param := c.Query(name)
	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseFloat(param, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed <= 0 {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}
	return parsed
}

func getViewport(c *gin.Context) viewport.Viewport {
	return viewport.Viewport{
		Width:  getQueryFloat("width", viewport.Default.Width, c),
		Height: getQueryFloat("height", viewport.Default.Height, c),
	}
}
