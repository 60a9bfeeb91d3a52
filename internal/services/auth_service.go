package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"healthrecord-backend/internal/models"
	"healthrecord-backend/pkg/security"

	"gorm.io/gorm"
)

// TokenPair is the result of one issuance: a short-lived access token and a
// long-lived refresh token whose hash has been persisted.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService orchestrates register/login/refresh/logout and owns the
// refresh-token records' state transitions.
type AuthService struct {
	db         *gorm.DB
	signer     *security.TokenSigner
	bcryptCost int
}

func NewAuthService(db *gorm.DB, signer *security.TokenSigner, bcryptCost int) *AuthService {
	return &AuthService{db: db, signer: signer, bcryptCost: bcryptCost}
}

func (s *AuthService) Register(email, password string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := security.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := models.User{Email: email, PasswordHash: hash}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// Authenticate checks the presented credentials. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Login additionally revokes every active refresh token of the user before a
// new one is issued: one live refresh session per user. Access tokens from a
// prior session keep working until their own expiry.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.Authenticate(email, password)
	if err != nil {
		return nil, err
	}
	if err := s.RevokeRefreshTokens(user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// IssueTokenPair signs both tokens and persists the refresh token's digest.
func (s *AuthService) IssueTokenPair(user *models.User) (TokenPair, error) {
	access, err := s.signer.IssueAccess(user.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("signing access token: %w", err)
	}
	refresh, err := s.signer.IssueRefresh(user.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("signing refresh token: %w", err)
	}
	if err := s.storeRefreshToken(user, refresh); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh consumes the presented refresh token and returns its owner. The
// caller issues a fresh pair; the presented token is unusable from here on.
func (s *AuthService) Refresh(raw string) (*models.User, error) {
	claims, err := s.signer.ParseRefresh(raw)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if err := s.consumeRefreshToken(claims.UserID, security.DigestToken(raw)); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return &user, nil
}

// Logout is idempotent and never fails: absent, malformed or already-invalid
// tokens are a silent no-op.
func (s *AuthService) Logout(raw string) {
	if raw == "" {
		return
	}
	claims, err := s.signer.ParseRefresh(raw)
	if err != nil {
		return
	}
	res := s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND token_hash = ? AND revoked_at IS NULL", claims.UserID, security.DigestToken(raw)).
		Update("revoked_at", time.Now())
	if res.Error != nil {
		log.Printf("logout: revoking refresh token: %v", res.Error)
	}
}

// RevokeRefreshTokens revokes every active refresh token of the user in one
// bulk conditional update. Used on login, password change and password reset.
func (s *AuthService) RevokeRefreshTokens(userID uint) error {
	res := s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("revoking refresh tokens: %w", res.Error)
	}
	return nil
}

// ChangePassword verifies the current password, stores the new hash and
// forces every existing session out.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if !security.CheckPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}
	if err := s.SetPassword(user, newPassword); err != nil {
		return err
	}
	return s.RevokeRefreshTokens(user.ID)
}

// SetPassword replaces the stored hash without revoking sessions; callers
// decide what happens to existing tokens.
func (s *AuthService) SetPassword(user *models.User, newPassword string) error {
	hash, err := security.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.db.Model(user).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

// DeleteAccount removes the user after password confirmation. Refresh tokens
// go with the user; they are never deleted any other way.
func (s *AuthService) DeleteAccount(userID uint, password string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return ErrInvalidCredentials
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error; err != nil {
			return fmt.Errorf("deleting refresh tokens: %w", err)
		}
		if err := tx.Unscoped().Delete(user).Error; err != nil {
			return fmt.Errorf("deleting user: %w", err)
		}
		return nil
	})
}

func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) storeRefreshToken(user *models.User, raw string) error {
	rt := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: security.DigestToken(raw),
		ExpiresAt: time.Now().Add(s.signer.RefreshTTL()),
	}
	if err := s.db.Create(&rt).Error; err != nil {
		return fmt.Errorf("storing refresh token: %w", err)
	}
	// re-read the persisted row: the invariant is about what the store holds,
	// not about the struct this function just filled in
	var stored models.RefreshToken
	if err := s.db.First(&stored, rt.ID).Error; err != nil {
		return fmt.Errorf("verifying refresh token: %w", err)
	}
	return verifyTokenOwner(&stored, user.ID)
}

// verifyTokenOwner enforces the issuance invariant: the stored record must
// belong to the authenticated principal. A mismatch is never ignored.
func verifyTokenOwner(stored *models.RefreshToken, userID uint) error {
	if stored.UserID != userID {
		log.Printf("auth: refresh token %d belongs to user %d, expected %d", stored.ID, stored.UserID, userID)
		return ErrAccountMismatch
	}
	return nil
}

// consumeRefreshToken is the single-use rotation step: one conditional UPDATE
// guarded by the current state, so two concurrent refreshes with the same
// token cannot both win.
func (s *AuthService) consumeRefreshToken(userID uint, tokenHash string) error {
	res := s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND token_hash = ? AND revoked_at IS NULL AND expires_at > ?",
			userID, tokenHash, time.Now()).
		Update("revoked_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("consuming refresh token: %w", res.Error)
	}
	if res.RowsAffected != 1 {
		return ErrTokenInvalid
	}
	return nil
}
