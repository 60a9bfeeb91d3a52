package handlers

import (
	"net/http"
	"testing"
)

func TestRefresh_MissingCookie(t *testing.T) {
	h, _ := setupAuthHandler(t)

	resp := postJSON(t, h.Refresh, "/auth/refresh", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.Code)
	}
}

func TestRefresh_RotatesSession(t *testing.T) {
	h, _ := setupAuthHandler(t)
	_, refresh := registerSession(t, h, "a@x.com")

	resp := postJSON(t, h.Refresh, "/auth/refresh", nil, refresh)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, resp.Code, resp.Body.String())
	}
	rotated := responseCookie(t, resp, "refresh_token")
	if rotated.Value == refresh.Value {
		t.Error("rotation must mint a new refresh token")
	}
	responseCookie(t, resp, "access_token")

	// the consumed token is single-use
	replay := postJSON(t, h.Refresh, "/auth/refresh", nil, refresh)
	if replay.Code != http.StatusUnauthorized {
		t.Fatalf("expected replayed token to fail, got %d", replay.Code)
	}

	// the rotated one works exactly once
	next := postJSON(t, h.Refresh, "/auth/refresh", nil, rotated)
	if next.Code != http.StatusOK {
		t.Fatalf("expected rotated token to refresh, got %d", next.Code)
	}
}

func TestRefresh_StoreFailureIsNotUnauthorized(t *testing.T) {
	h, db := setupAuthHandler(t)
	_, refresh := registerSession(t, h, "a@x.com")

	// a broken store is an internal error, not a token verdict
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	_ = sqlDB.Close()

	resp := postJSON(t, h.Refresh, "/auth/refresh", nil, refresh)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d: %s", http.StatusInternalServerError, resp.Code, resp.Body.String())
	}
}

func TestRefresh_GarbageToken(t *testing.T) {
	h, _ := setupAuthHandler(t)

	resp := postJSON(t, h.Refresh, "/auth/refresh", nil, &http.Cookie{Name: "refresh_token", Value: "not-a-jwt"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.Code)
	}
}
