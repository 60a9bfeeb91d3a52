package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"healthrecord-backend/internal/models"
	"healthrecord-backend/internal/services"
	"healthrecord-backend/internal/session"
	"healthrecord-backend/pkg/security"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

func setupAuthHandler(t *testing.T) (*AuthHandler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.PasswordResetToken{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	signer := security.NewTokenSigner([]byte("test-secret"), 10*time.Minute, 24*time.Hour, "http://test")
	transport := session.NewTransport(session.Config{
		AccessCookieName:  "access_token",
		RefreshCookieName: "refresh_token",
		SameSite:          http.SameSiteLaxMode,
		AccessTTL:         10 * time.Minute,
		RefreshTTL:        24 * time.Hour,
	})
	auth := services.NewAuthService(db, signer, bcrypt.MinCost)
	reset := services.NewPasswordResetService(db, auth, time.Hour)

	return NewAuthHandler(auth, reset, transport), db
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, payload any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	handler(resp, req)
	return resp
}

func responseCookie(t *testing.T, resp *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set; got %v", name, resp.Result().Cookies())
	return nil
}

func registerSession(t *testing.T, h *AuthHandler, email string) (access, refresh *http.Cookie) {
	t.Helper()

	resp := postJSON(t, h.Register, "/auth/register", map[string]string{
		"email":    email,
		"password": "StrongPass123!@#",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected %d, got %d: %s", http.StatusCreated, resp.Code, resp.Body.String())
	}
	return responseCookie(t, resp, "access_token"), responseCookie(t, resp, "refresh_token")
}
