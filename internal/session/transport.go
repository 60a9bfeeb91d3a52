// Package session moves tokens between HTTP requests/responses and the auth
// core: bearer-header or cookie extraction on the way in, session cookies on
// the way out.
package session

import (
	"net/http"
	"strings"
	"time"
)

type Config struct {
	AccessCookieName  string
	RefreshCookieName string
	Domain            string
	Secure            bool
	SameSite          http.SameSite
	AccessTTL         time.Duration
	RefreshTTL        time.Duration
}

type Transport struct {
	cfg Config
}

func NewTransport(cfg Config) *Transport {
	return &Transport{cfg: cfg}
}

// AccessToken prefers an Authorization bearer header over the access cookie,
// so both API clients and browsers work.
func (t *Transport) AccessToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) >= 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	if c, err := r.Cookie(t.cfg.AccessCookieName); err == nil {
		return c.Value
	}
	return ""
}

func (t *Transport) RefreshToken(r *http.Request) string {
	if c, err := r.Cookie(t.cfg.RefreshCookieName); err == nil {
		return c.Value
	}
	return ""
}

// SetSessionCookies writes both tokens with lifetimes matching their TTLs.
func (t *Transport) SetSessionCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, t.cookie(t.cfg.AccessCookieName, access, t.cfg.AccessTTL))
	http.SetCookie(w, t.cookie(t.cfg.RefreshCookieName, refresh, t.cfg.RefreshTTL))
}

// ClearSessionCookies expires both cookies immediately.
func (t *Transport) ClearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, t.expired(t.cfg.AccessCookieName))
	http.SetCookie(w, t.expired(t.cfg.RefreshCookieName))
}

func (t *Transport) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   t.cfg.Domain,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   t.cfg.Secure,
		SameSite: t.cfg.SameSite,
	}
}

func (t *Transport) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   t.cfg.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   t.cfg.Secure,
		SameSite: t.cfg.SameSite,
	}
}
