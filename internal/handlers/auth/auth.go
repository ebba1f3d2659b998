// Package auth implements the registration, login, token-refresh and
// auth-check endpoints.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dcastane/labsamples/internal/gormw"
	"github.com/dcastane/labsamples/internal/token"
)

var (
	logger = log.With().Str("component", "auth").Logger()
)

const (
	// Device identifier for clients that do not send one. Login and
	// refresh must agree on this or the stored pair never matches.
	defaultDevice = "unknown"

	maxDeviceLen = 50
)

type Handler struct {
	db     *gormw.DB
	signer *token.Signer
	config *token.Config
}

func NewHandler(config *token.Config, db *gormw.DB) (*Handler, error) {
	signer, err := token.NewSigner(config)
	if err != nil {
		return nil, err
	}

	return &Handler{
		db:     db,
		signer: signer,
		config: config,
	}, nil
}

// Signer exposes the token signer so the router can build the guard
// middleware for the authorized API surface.
func (h *Handler) Signer() *token.Signer {
	return h.signer
}

func (h *Handler) RegisterHandlers(rg *gin.RouterGroup) {
	authRoutes := rg.Group("/auth")
	{
		authRoutes.POST("/register", h.handleRegister)
		authRoutes.POST("/login", h.handleLogin)
		authRoutes.POST("/refresh-token", h.handleRefreshToken)
		authRoutes.POST("/check-auth", h.handleCheckAuth)
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. ok is false when the header is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return tok, tok != ""
}

func unauthorized(c *gin.Context, code, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": code, "message": message})
}

func deviceOrDefault(device string) string {
	if device == "" {
		return defaultDevice
	}
	return device
}
