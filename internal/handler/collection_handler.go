package handler

import (
	"net/http"
	"strconv"

	"CineShelf/internal/middleware"
	"CineShelf/internal/service"

	"github.com/gin-gonic/gin"
)

// CollectionHandler serves the watchlist and the watched list; both
// expose the same GET / POST / DELETE-by-id surface.
type CollectionHandler struct {
	watchlistService *service.WatchlistService
	listService      *service.ListService
}

func NewCollectionHandler(watchlistService *service.WatchlistService, listService *service.ListService) *CollectionHandler {
	return &CollectionHandler{
		watchlistService: watchlistService,
		listService:      listService,
	}
}

// parseTmdbID accepts both numeric and string ids in the path so
// "603" and 603 address the same entry.
func parseTmdbID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("tmdbId"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tmdbId"})
		return 0, false
	}
	return id, true
}

func (h *CollectionHandler) GetWatchlist(c *gin.Context) {
	watchlist, err := h.watchlistService.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, watchlist)
}

func (h *CollectionHandler) AddToWatchlist(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	record, err := h.watchlistService.Add(c.Request.Context(), middleware.UserID(c), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *CollectionHandler) RemoveFromWatchlist(c *gin.Context) {
	tmdbID, ok := parseTmdbID(c)
	if !ok {
		return
	}

	if err := h.watchlistService.Remove(c.Request.Context(), middleware.UserID(c), tmdbID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}

func (h *CollectionHandler) GetList(c *gin.Context) {
	list, err := h.listService.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CollectionHandler) AddToList(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	record, err := h.listService.Add(c.Request.Context(), middleware.UserID(c), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *CollectionHandler) RemoveFromList(c *gin.Context) {
	tmdbID, ok := parseTmdbID(c)
	if !ok {
		return
	}

	if err := h.listService.Remove(c.Request.Context(), middleware.UserID(c), tmdbID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}
