package middleware

import (
	"net/http"
	"strings"

	"CineShelf/internal/repo"
	"CineShelf/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userIDKey = "userID"

// Auth validates the bearer token and stores the subject id on the
// request context. The token may also arrive as a "token" query
// parameter so browser websocket clients can authenticate the stream.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := authService.VerifyAuthToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// AdminOnly requires the authenticated user to carry the admin flag.
// It must run after Auth.
func AdminOnly(userRepo repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id set by Auth.
func UserID(c *gin.Context) primitive.ObjectID {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(primitive.ObjectID)
	return userID
}
