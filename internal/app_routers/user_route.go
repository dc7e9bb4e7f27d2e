package approuters

import (
	"CineShelf/internal/configuration"
	"CineShelf/internal/middleware"

	"github.com/gin-gonic/gin"
)

func UserRouters(router *gin.Engine, container *configuration.Container) {
	userRoute := router.Group("/api/user", middleware.Auth(container.AuthService))
	{
		userRoute.PUT("/profile", container.UserHandler.UpdateProfile)
		userRoute.PUT("/password", container.UserHandler.UpdatePassword)
		userRoute.PUT("/preferences", container.UserHandler.UpdatePreferences)
		userRoute.POST("/avatar", container.UserHandler.UploadAvatar)
	}
}
