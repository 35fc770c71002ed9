package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests that do not carry an authenticated session.
func RequireAuth(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAuthenticated(c.Request) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}
