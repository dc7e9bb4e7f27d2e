package approuters

import (
	"CineShelf/internal/configuration"
	"CineShelf/internal/middleware"

	"github.com/gin-gonic/gin"
)

func NotificationRouters(router *gin.Engine, container *configuration.Container) {
	notificationRoute := router.Group("/api/notifications", middleware.Auth(container.AuthService))
	{
		notificationRoute.GET("", container.NotificationHandler.List)
		notificationRoute.GET("/stream", container.NotificationHandler.Stream)
		notificationRoute.PUT("/read-all", container.NotificationHandler.MarkAllRead)
		notificationRoute.PUT("/:id/read", container.NotificationHandler.MarkRead)
		notificationRoute.DELETE("/:id", container.NotificationHandler.Delete)
	}
}
