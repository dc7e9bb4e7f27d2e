package approuters

import (
	"CineShelf/internal/configuration"
	"CineShelf/internal/middleware"

	"github.com/gin-gonic/gin"
)

func PeopleRouters(router *gin.Engine, container *configuration.Container) {
	peopleRoute := router.Group("/api/people", middleware.Auth(container.AuthService))
	{
		peopleRoute.GET("/search", container.PeopleHandler.Search)
		peopleRoute.GET("/sakha", container.PeopleHandler.ListSakha)
		peopleRoute.POST("/sakha", container.PeopleHandler.AddSakha)
		peopleRoute.DELETE("/sakha/:id", container.PeopleHandler.RemoveSakha)
	}
}
