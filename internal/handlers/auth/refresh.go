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

// handleRefreshToken exchanges an expired-but-validly-signed access token
// plus the stored refresh token for a new pair. The access token proves
// the caller once authenticated; the stored row proves the session is
// still within its refresh window.
func (h *Handler) handleRefreshToken(c *gin.Context) {
	accessToken, ok := bearerToken(c)
	if !ok {
		logger.Warn().Msg("No token provided for refresh")
		unauthorized(c, "invalid_token", "No token provided.")
		return
	}

	device := deviceOrDefault(c.GetHeader("Device"))

	claims, err := h.signer.ParseExpired(accessToken)
	if err != nil {
		logger.Warn().Msg("Invalid access token signature on refresh")
		unauthorized(c, "invalid_token", "Invalid token.")
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid user id in the token")
		unauthorized(c, "invalid_token", "Invalid token.")
		return
	}

	stored, err := storage.GetRefreshToken(h.db, userID, device)
	if err != nil {
		if errors.Is(err, storage.ErrRefreshTokenNotFound) {
			logger.Warn().Uint("user_id", userID).Msg("Refresh token not found in the database")
			unauthorized(c, "refresh_token_not_found", "Refresh token not found.")
			return
		}
		logger.Error().Err(err).Msg("Database error during token refresh")
		c.String(http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	if stored.Expired(time.Now()) {
		// The row is spent, remove it so the next attempt reports
		// refresh_token_not_found instead.
		if err := storage.DeleteRefreshToken(h.db, userID, device); err != nil &&
			!errors.Is(err, storage.ErrRefreshTokenNotFound) {
			logger.Error().Err(err).Msg("Failed to delete expired refresh token")
		}
		logger.Warn().Uint("user_id", userID).Msg("Expired refresh token presented")
		unauthorized(c, "expired_refresh_token", "Invalid or expired refresh token.")
		return
	}

	user, err := storage.GetUserByID(h.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().Uint("user_id", userID).Msg("User from token no longer exists")
			unauthorized(c, "invalid_token", "Invalid token.")
			return
		}
		logger.Error().Err(err).Msg("Database error during token refresh")
		c.String(http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	newAccessToken, err := h.signer.IssueAccessToken(user)
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

	newRefreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     secret,
		ExpiresAt: time.Now().Add(h.config.RefreshTokenTTL()),
		Device:    device,
	}
	if err := storage.ReplaceRefreshToken(h.db, newRefreshToken); err != nil {
		logger.Error().Err(err).Msg("Failed to store refresh token")
		c.String(http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"AccessToken": newAccessToken})
}
