package middleware

import (
	"net/http"
	"strings"

	"quizbox/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer access token and stores the caller's
// user id in the request context under "user_id".
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header."})
			c.Abort()
			return
		}

		userID, err := services.ParseToken(parts[1], jwtSecret, "access")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token."})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
