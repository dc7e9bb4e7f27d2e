package handler

import (
	"net/http"

	"CineShelf/internal/middleware"
	"CineShelf/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

func (h *ExportHandler) JSON(c *gin.Context) {
	bundle, err := h.exportService.BuildJSON(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cineshelf-export.json"`)
	c.JSON(http.StatusOK, bundle)
}

func (h *ExportHandler) WatchlistCSV(c *gin.Context) {
	data, err := h.exportService.BuildWatchlistCSV(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="watchlist.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *ExportHandler) ListCSV(c *gin.Context) {
	data, err := h.exportService.BuildListCSV(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="list.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
