package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// ErrTokenInvalid covers every token validation failure: bad signature,
// malformed payload, expired, or wrong kind. Callers never learn which.
var ErrTokenInvalid = errors.New("token invalid")

// AccessClaims is the decoded payload of a valid access token.
type AccessClaims struct {
	UserID    uint
	IssuedAt  time.Time
	ExpiresAt time.Time
	Issuer    string
}

// RefreshClaims is the decoded payload of a valid refresh token. TokenID is
// the jti claim; it makes two tokens minted in the same second distinct.
type RefreshClaims struct {
	UserID    uint
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Issuer    string
}

type sessionClaims struct {
	TokenKind string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenSigner issues and validates the signed session tokens. Access tokens
// are self-verifying; refresh tokens additionally need a store lookup so they
// can be revoked before their natural expiry.
type TokenSigner struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	parser     *jwt.Parser
}

func NewTokenSigner(secret []byte, accessTTL, refreshTTL time.Duration, issuer string) *TokenSigner {
	return &TokenSigner{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (s *TokenSigner) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenSigner) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenSigner) IssueAccess(userID uint) (string, error) {
	return s.sign(userID, kindAccess, s.accessTTL, "")
}

func (s *TokenSigner) IssueRefresh(userID uint) (string, error) {
	return s.sign(userID, kindRefresh, s.refreshTTL, uuid.NewString())
}

func (s *TokenSigner) sign(userID uint, kind string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    s.issuer,
			ID:        jti,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseAccess validates raw as an access token and returns its typed claims.
func (s *TokenSigner) ParseAccess(raw string) (*AccessClaims, error) {
	claims, err := s.parse(raw, kindAccess)
	if err != nil {
		return nil, err
	}
	userID, err := subjectUserID(claims)
	if err != nil {
		return nil, err
	}
	return &AccessClaims{
		UserID:    userID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		Issuer:    claims.Issuer,
	}, nil
}

// ParseRefresh validates raw as a refresh token and returns its typed claims.
func (s *TokenSigner) ParseRefresh(raw string) (*RefreshClaims, error) {
	claims, err := s.parse(raw, kindRefresh)
	if err != nil {
		return nil, err
	}
	userID, err := subjectUserID(claims)
	if err != nil {
		return nil, err
	}
	return &RefreshClaims{
		UserID:    userID,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		Issuer:    claims.Issuer,
	}, nil
}

func (s *TokenSigner) parse(raw, expectedKind string) (*sessionClaims, error) {
	var claims sessionClaims
	token, err := s.parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.TokenKind != expectedKind || claims.IssuedAt == nil {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

func subjectUserID(claims *sessionClaims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrTokenInvalid
	}
	return uint(id), nil
}
