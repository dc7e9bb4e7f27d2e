package approuters

import (
	"CineShelf/internal/configuration"
	"CineShelf/internal/middleware"

	"github.com/gin-gonic/gin"
)

func PickRouters(router *gin.Engine, container *configuration.Container) {
	auth := middleware.Auth(container.AuthService)
	adminOnly := middleware.AdminOnly(container.UserRepo)

	pickRoute := router.Group("/api/picks")
	{
		pickRoute.GET("", container.PickHandler.List)
		pickRoute.GET("/:id", container.PickHandler.Get)
		pickRoute.POST("/:id/like", auth, container.PickHandler.Like)

		// Curation is an admin-only affair.
		pickRoute.POST("", auth, adminOnly, container.PickHandler.Create)
		pickRoute.PUT("/:id", auth, adminOnly, container.PickHandler.Update)
		pickRoute.DELETE("/:id", auth, adminOnly, container.PickHandler.Delete)
	}
}
