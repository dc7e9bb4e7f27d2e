package approuters

import (
	"CineShelf/internal/configuration"
	"CineShelf/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRouters(router *gin.Engine, container *configuration.Container) {
	authRoute := router.Group("/api/auth")
	{
		authRoute.POST("/signup", container.AuthHandler.Signup)
		authRoute.POST("/login", container.AuthHandler.Login)
		authRoute.POST("/forgot-password", container.AuthHandler.ForgotPassword)
		authRoute.POST("/reset-password", container.AuthHandler.ResetPassword)
		authRoute.GET("/me", middleware.Auth(container.AuthService), container.AuthHandler.Me)
	}
}
