package approuters

import (
	"CineShelf/internal/configuration"
	"CineShelf/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRouters(router *gin.Engine, container *configuration.Container) {
	adminRoute := router.Group("/api/admin",
		middleware.Auth(container.AuthService),
		middleware.AdminOnly(container.UserRepo),
	)
	{
		adminRoute.GET("/users", container.AdminHandler.ListUsers)
		adminRoute.DELETE("/users/:id", container.AdminHandler.DeleteUser)
		adminRoute.PUT("/users/:id/verify", container.AdminHandler.SetVerified)
		adminRoute.PUT("/users/:id/admin", container.AdminHandler.SetAdmin)
		adminRoute.GET("/stats", container.AdminHandler.Stats)
	}
}
