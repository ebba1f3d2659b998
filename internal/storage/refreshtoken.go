package storage

import (
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dcastane/labsamples/internal/gormw"
	"github.com/dcastane/labsamples/internal/models"
)

var (
	logger = log.With().Str("component", "storage").Logger()
)

// ErrRefreshTokenNotFound is returned by delete/lookup helpers when no row
// matches the (user, device) pair.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

func AddRefreshToken(db *gormw.DB, refreshToken *models.RefreshToken) error {
	return db.Create(refreshToken).Error
}

// GetRefreshToken returns the stored token for the (user, device) pair, or
// ErrRefreshTokenNotFound if there is none.
func GetRefreshToken(db *gormw.DB, userID uint, device string) (*models.RefreshToken, error) {
	o := &models.RefreshToken{}
	err := db.Where("user_id = ? AND device = ?", userID, device).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRefreshTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteRefreshToken removes the row for the (user, device) pair. Returns
// ErrRefreshTokenNotFound when there was nothing to delete; callers doing
// replace-on-login treat that as best-effort cleanup, not a failure.
func DeleteRefreshToken(db *gormw.DB, userID uint, device string) error {
	res := db.Where("user_id = ? AND device = ?", userID, device).Delete(&models.RefreshToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

// ReplaceRefreshToken deletes any existing row for the pair and inserts the
// new one. Double-delete is tolerated so login and refresh share the same
// replacement discipline.
func ReplaceRefreshToken(db *gormw.DB, refreshToken *models.RefreshToken) error {
	if err := DeleteRefreshToken(db, refreshToken.UserID, refreshToken.Device); err != nil &&
		!errors.Is(err, ErrRefreshTokenNotFound) {
		return err
	}
	return AddRefreshToken(db, refreshToken)
}

// Refresh token will exists in database forever if not register a cleaner.
func RegisterRefreshTokensCleaner(scheduler gocron.Scheduler, db *gormw.DB) {
	_, _ = scheduler.NewJob(
		gocron.CronJob(
			// 4am Daily
			"0 4 * * *",
			false,
		),
		gocron.NewTask(
			func() {
				logger.Info().Msg("Cleaning up expired refresh tokens")
				yesterday := time.Now().AddDate(0, 0, -1)
				db.Where("expires_at < ?", yesterday).Delete(&models.RefreshToken{})
			},
		),
	)
}
