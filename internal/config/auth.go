package config

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	defaultAccessTTL  = 10 * time.Minute
	defaultRefreshTTL = 14 * 24 * time.Hour
	defaultResetTTL   = time.Hour
)

// AuthConfig carries every tunable of the session-token lifecycle. Values come
// from the environment; zero-configuration defaults suit local development.
type AuthConfig struct {
	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
	BcryptCost int
	ResetTTL   time.Duration

	AccessCookieName  string
	RefreshCookieName string
	CookieDomain      string
	CookieSecure      bool
	CookieSameSite    http.SameSite
}

func LoadAuth(getEnv func(string) string) AuthConfig {
	cfg := AuthConfig{
		JWTSecret:         []byte(getEnv("JWT_SECRET")),
		AccessTTL:         defaultAccessTTL,
		RefreshTTL:        defaultRefreshTTL,
		Issuer:            envOr(getEnv, "JWT_ISSUER", "http://localhost"),
		BcryptCost:        envInt(getEnv, "BCRYPT_COST", 0),
		ResetTTL:          defaultResetTTL,
		AccessCookieName:  envOr(getEnv, "AUTH_ACCESS_COOKIE", "access_token"),
		RefreshCookieName: envOr(getEnv, "AUTH_REFRESH_COOKIE", "refresh_token"),
		CookieDomain:      getEnv("AUTH_COOKIE_DOMAIN"),
		CookieSecure:      envBool(getEnv, "AUTH_COOKIE_SECURE", false),
		CookieSameSite:    sameSite(getEnv("AUTH_COOKIE_SAMESITE")),
	}
	if m := envInt(getEnv, "JWT_ACCESS_TTL_MINUTES", 0); m > 0 {
		cfg.AccessTTL = time.Duration(m) * time.Minute
	}
	if d := envInt(getEnv, "JWT_REFRESH_TTL_DAYS", 0); d > 0 {
		cfg.RefreshTTL = time.Duration(d) * 24 * time.Hour
	}
	if m := envInt(getEnv, "RESET_TOKEN_TTL_MINUTES", 0); m > 0 {
		cfg.ResetTTL = time.Duration(m) * time.Minute
	}
	return cfg
}

func envOr(getEnv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getEnv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(getEnv func(string) string, key string, fallback int) int {
	v := strings.TrimSpace(getEnv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(getEnv func(string) string, key string, fallback bool) bool {
	v := strings.TrimSpace(getEnv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func sameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
