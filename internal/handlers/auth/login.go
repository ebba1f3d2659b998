package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dcastane/labsamples/internal/models"
	"github.com/dcastane/labsamples/internal/storage"
	"github.com/dcastane/labsamples/internal/token"
)

type loginParams struct {
	Email    string `json:"email" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) handleLogin(c *gin.Context) {
	params := &loginParams{}
	if err := c.ShouldBindJSON(params); err != nil {
		c.String(http.StatusBadRequest, "Missing required parameters")
		return
	}

	device := deviceOrDefault(c.GetHeader("deviceInfo"))
	if len(device) > maxDeviceLen {
		c.String(http.StatusBadRequest, "Invalid device identifier")
		return
	}

	user, err := storage.GetUserByEmail(h.db, params.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same response as the wrong-password path, no hints about
			// whether the email exists.
			c.String(http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		logger.Error().Err(err).Msg("Database error during login")
		c.String(http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	if !user.CheckPassword(params.Password) {
		logger.Warn().Str("email", params.Email).Msg("Login failed")
		c.String(http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	accessToken, err := h.signer.IssueAccessToken(user)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to issue access token")
		c.String(http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	secret, err := token.NewRefreshToken()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate refresh token")
		c.String(http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     secret,
		ExpiresAt: time.Now().Add(h.config.RefreshTokenTTL()),
		Device:    device,
	}
	if err := storage.ReplaceRefreshToken(h.db, refreshToken); err != nil {
		logger.Error().Err(err).Msg("Failed to store refresh token")
		c.String(http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	logger.Info().Str("email", params.Email).Msg("Login successful")
	c.JSON(http.StatusOK, gin.H{"AccessToken": accessToken})
}
