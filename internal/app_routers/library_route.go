package approuters

import (
	"CineShelf/internal/configuration"
	"CineShelf/internal/middleware"

	"github.com/gin-gonic/gin"
)

// LibraryRouters wires the per-user movie collections: the watchlist,
// the watched list, reviews, and data export.
func LibraryRouters(router *gin.Engine, container *configuration.Container) {
	auth := middleware.Auth(container.AuthService)

	watchlistRoute := router.Group("/api/watchlist", auth)
	{
		watchlistRoute.GET("", container.CollectionHandler.GetWatchlist)
		watchlistRoute.POST("", container.CollectionHandler.AddToWatchlist)
		watchlistRoute.DELETE("/:tmdbId", container.CollectionHandler.RemoveFromWatchlist)
	}

	listRoute := router.Group("/api/list", auth)
	{
		listRoute.GET("", container.CollectionHandler.GetList)
		listRoute.POST("", container.CollectionHandler.AddToList)
		listRoute.DELETE("/:tmdbId", container.CollectionHandler.RemoveFromList)
	}

	reviewRoute := router.Group("/api/review", auth)
	{
		reviewRoute.GET("", container.ReviewHandler.List)
		reviewRoute.POST("", container.ReviewHandler.Create)
		reviewRoute.GET("/:tmdbId", container.ReviewHandler.Get)
		reviewRoute.DELETE("/:tmdbId", container.ReviewHandler.Delete)
	}

	exportRoute := router.Group("/api/export", auth)
	{
		exportRoute.GET("/json", container.ExportHandler.JSON)
		exportRoute.GET("/watchlist.csv", container.ExportHandler.WatchlistCSV)
		exportRoute.GET("/list.csv", container.ExportHandler.ListCSV)
	}
}
