package approuters

import (
	"CineShelf/internal/configuration"

	"github.com/gin-gonic/gin"
)

// ProxyRouters exposes the external API passthroughs. They are public
// reads; the mood endpoint is rate limited per client IP because every
// call costs an LLM completion.
func ProxyRouters(router *gin.Engine, container *configuration.Container) {
	apiRoute := router.Group("/api")
	{
		apiRoute.GET("/tmdb/*path", container.ProxyHandler.TMDB)
		apiRoute.GET("/boxoffice", container.ProxyHandler.BoxOffice)
		apiRoute.GET("/streaming/:id", container.ProxyHandler.Streaming)
		apiRoute.POST("/mood", container.MoodLimiter.Handler(), container.ProxyHandler.Mood)
	}
}
