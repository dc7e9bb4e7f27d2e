package handler

import (
	"net/http"
	"strconv"

	"CineShelf/internal/client"

	"github.com/gin-gonic/gin"
)

// ProxyHandler forwards requests to the external metadata and LLM APIs.
type ProxyHandler struct {
	tmdb       *client.TMDBClient
	openRouter *client.OpenRouterClient
}

func NewProxyHandler(tmdb *client.TMDBClient, openRouter *client.OpenRouterClient) *ProxyHandler {
	return &ProxyHandler{
		tmdb:       tmdb,
		openRouter: openRouter,
	}
}

// TMDB forwards the wildcard path plus query string to TMDB verbatim.
func (h *ProxyHandler) TMDB(c *gin.Context) {
	body, err := h.tmdb.Get(c.Request.Context(), c.Param("path"), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *ProxyHandler) BoxOffice(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.tmdb.BoxOffice(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": entries})
}

func (h *ProxyHandler) Streaming(c *gin.Context) {
	body, err := h.tmdb.WatchProviders(c.Request.Context(), c.DefaultQuery("type", "movie"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// Mood classifies free text into one mood label via the LLM gateway.
func (h *ProxyHandler) Mood(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	mood, err := h.openRouter.ClassifyMood(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mood": mood})
}
