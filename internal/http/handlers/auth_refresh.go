package handlers

import (
	"errors"
	"net/http"

	"healthrecord-backend/internal/response"
	"healthrecord-backend/internal/services"
)

// Refresh rotates the session: the presented refresh token is consumed and a
// fresh pair is set. A reused or expired token gets a blanket 401.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	raw := h.transport.RefreshToken(r)
	if raw == "" {
		response.WriteErr(w, http.StatusUnauthorized, "Refresh token required")
		return
	}

	user, err := h.auth.Refresh(raw)
	if err != nil {
		if errors.Is(err, services.ErrTokenInvalid) {
			response.WriteErr(w, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}
		response.WriteErr(w, http.StatusInternalServerError, "could not refresh session")
		return
	}

	pair, err := h.auth.IssueTokenPair(user)
	if err != nil {
		response.WriteErr(w, http.StatusInternalServerError, "could not issue session tokens")
		return
	}
	h.transport.SetSessionCookies(w, pair.Access, pair.Refresh)
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
