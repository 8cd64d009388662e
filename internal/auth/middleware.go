package auth

import (
	"huddle/internal/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the session and stores the acting username in the
// request context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the session from the request
		session, err := GetSession(c)
		if err != nil {
			log.Printf("Warning: Rejected unauthenticated request from %s: %v", utils.GetRealClientIP(c), err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		// Store user info in context for handlers to use
		c.Set("username", session.Username)

		c.Next()
	}
}
