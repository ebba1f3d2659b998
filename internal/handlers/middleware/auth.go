// Package middleware holds the gin middlewares shared by the API routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dcastane/labsamples/internal/token"
)

// KeyUserID is the gin context key under which RequireAuth stores the
// authenticated user's id.
const KeyUserID = "AUTH_USER_ID"

// RequireAuth fully validates the bearer token and aborts with 401 when it
// is missing, malformed, expired or otherwise invalid.
func RequireAuth(signer *token.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token", "message": "No token provided."})
			return
		}

		claims, err := signer.ParseActive(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token", "message": "Invalid token."})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token", "message": "Invalid token."})
			return
		}

		c.Set(KeyUserID, userID)
		c.Next()
	}
}
