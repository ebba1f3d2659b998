package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleCheckAuth is a pure verification endpoint: full token validation,
// no side effects, no database access.
func (h *Handler) handleCheckAuth(c *gin.Context) {
	accessToken, ok := bearerToken(c)
	if !ok {
		unauthorized(c, "invalid_token", "No token provided.")
		return
	}

	if _, err := h.signer.ParseActive(accessToken); err != nil {
		unauthorized(c, "invalid_token", "Invalid token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "authenticated"})
}
