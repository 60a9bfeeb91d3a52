package services

import (
	"errors"
	"fmt"
	"time"

	"healthrecord-backend/internal/models"
	"healthrecord-backend/pkg/security"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PasswordResetService issues and redeems single-use password-reset tokens.
// At most one token is live per email; a new request replaces the prior one.
type PasswordResetService struct {
	db       *gorm.DB
	auth     *AuthService
	tokenTTL time.Duration
}

func NewPasswordResetService(db *gorm.DB, auth *AuthService, tokenTTL time.Duration) *PasswordResetService {
	return &PasswordResetService{db: db, auth: auth, tokenTTL: tokenTTL}
}

// RequestReset generates a reset token for the email and returns the raw
// value for out-of-band delivery. An unknown email silently succeeds with an
// empty token so callers cannot probe for accounts.
func (s *PasswordResetService) RequestReset(email string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	plain, digest, err := security.GenerateResetToken()
	if err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	record := models.PasswordResetToken{
		Email:     user.Email,
		TokenHash: digest,
		ExpiresAt: time.Now().Add(s.tokenTTL),
		CreatedAt: time.Now(),
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_hash", "expires_at", "created_at"}),
	}).Create(&record).Error
	if err != nil {
		return "", fmt.Errorf("storing reset token: %w", err)
	}
	return plain, nil
}

// Redeem exchanges a valid reset token for a new password. Missing, replaced
// and expired tokens all fail the same way. On success every refresh session
// of the user is revoked and the token is deleted.
func (s *PasswordResetService) Redeem(raw, newPassword string) (*models.User, error) {
	var record models.PasswordResetToken
	if err := s.db.Where("token_hash = ?", security.DigestToken(raw)).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("looking up reset token: %w", err)
	}
	if record.IsExpired() {
		return nil, ErrResetTokenInvalid
	}

	var user models.User
	if err := s.db.Where("email = ?", record.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := s.auth.SetPassword(&user, newPassword); err != nil {
		return nil, err
	}
	if err := s.auth.RevokeRefreshTokens(user.ID); err != nil {
		return nil, err
	}
	if err := s.db.Where("email = ?", user.Email).Delete(&models.PasswordResetToken{}).Error; err != nil {
		return nil, fmt.Errorf("deleting reset token: %w", err)
	}
	return &user, nil
}
