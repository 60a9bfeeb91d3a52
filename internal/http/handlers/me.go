package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"healthrecord-backend/internal/response"
	"healthrecord-backend/internal/services"
)

// Me serves the authenticated user's profile and password-confirmed account
// deletion. The guard passes the identity in explicitly.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, userID uint) {
	switch r.Method {
	case http.MethodGet:
		h.profile(w, userID)
	case http.MethodDelete:
		h.deleteAccount(w, r, userID)
	default:
		response.WriteErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *AuthHandler) profile(w http.ResponseWriter, userID uint) {
	user, err := h.auth.GetUser(userID)
	if err != nil {
		response.WriteErr(w, http.StatusUnauthorized, "Token invalid")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"user": userPayload(user)})
}

func (h *AuthHandler) deleteAccount(w http.ResponseWriter, r *http.Request, userID uint) {
	var in struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.WriteErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.auth.DeleteAccount(userID, in.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.WriteErr(w, http.StatusBadRequest, "password confirmation failed")
			return
		}
		response.WriteErr(w, http.StatusInternalServerError, "could not delete account")
		return
	}
	h.transport.ClearSessionCookies(w)
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UpdateSecurity changes the password. All sessions are revoked, including
// the current one; the cleared cookies force a new login.
func (h *AuthHandler) UpdateSecurity(w http.ResponseWriter, r *http.Request, userID uint) {
	if r.Method != http.MethodPatch {
		response.WriteErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.WriteErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if in.CurrentPassword == "" || len(in.NewPassword) < 8 {
		response.WriteErr(w, http.StatusBadRequest, "current password and a new password of at least 8 characters are required")
		return
	}

	if err := h.auth.ChangePassword(userID, in.CurrentPassword, in.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.WriteErr(w, http.StatusBadRequest, "current password is invalid")
			return
		}
		response.WriteErr(w, http.StatusInternalServerError, "could not update password")
		return
	}
	h.transport.ClearSessionCookies(w)
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
