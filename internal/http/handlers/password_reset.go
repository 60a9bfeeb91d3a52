package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"healthrecord-backend/internal/response"
)

// ForgotPassword answers identically for known and unknown emails.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.WriteErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" {
		response.WriteErr(w, http.StatusBadRequest, "email is required")
		return
	}

	// TODO: hand the returned raw token to the mailer once one is wired; the
	// response must stay the same either way.
	if _, err := h.reset.RequestReset(in.Email); err != nil {
		response.WriteErr(w, http.StatusInternalServerError, "could not process request")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ResetPassword redeems a reset token, sets the new password and starts a
// fresh session. Every previously issued refresh token is dead afterwards.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.WriteErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if in.Token == "" || len(in.Password) < 8 {
		response.WriteErr(w, http.StatusBadRequest, "token and a password of at least 8 characters are required")
		return
	}

	user, err := h.reset.Redeem(in.Token, in.Password)
	if err != nil {
		response.WriteErr(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}
	h.respondWithSession(w, user, http.StatusOK)
}
