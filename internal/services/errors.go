package services

import (
	"errors"

	"healthrecord-backend/pkg/security"
)

var (
	// ErrInvalidCredentials is a single undistinguished outcome for unknown
	// email and wrong password alike, to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrDuplicateEmail = errors.New("email already registered")

	// ErrTokenInvalid collapses bad signature, malformed, expired, wrong kind
	// and revoked into one outcome at the validation boundary.
	ErrTokenInvalid = security.ErrTokenInvalid

	ErrResetTokenInvalid = errors.New("invalid or expired reset token")

	// ErrAccountMismatch marks an internal-consistency violation: a freshly
	// stored refresh token whose owner differs from the requesting identity.
	ErrAccountMismatch = errors.New("refresh token owner does not match user")
)
