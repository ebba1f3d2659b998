package models

import "time"

// RefreshToken is the single session-continuation row for a (user, device)
// pair. The composite unique index makes the one-row-per-pair invariant a
// database guarantee, not just delete-then-insert sequencing.
type RefreshToken struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_refresh_user_device"`
	User      User      `gorm:"foreignKey:UserID"`
	Token     string    `gorm:"size:255;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Device    string    `gorm:"size:50;not null;uniqueIndex:idx_refresh_user_device"`
}

func (rt *RefreshToken) Expired(now time.Time) bool {
	return !rt.ExpiresAt.After(now)
}
