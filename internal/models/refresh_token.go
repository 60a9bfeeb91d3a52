package models

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken stores only the SHA-256 digest of an issued refresh token.
// The raw value never touches the database.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index:idx_refresh_user_hash"`
	TokenHash string    `gorm:"size:64;not null;index:idx_refresh_user_hash"`
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
}

// IsExpired is evaluated lazily; there is no background sweeper.
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
