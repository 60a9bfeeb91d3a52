package handlers

import (
	"net/http"

	"healthrecord-backend/internal/response"
)

// Logout always succeeds: whatever the state of the presented token, the
// session cookies are cleared and the response is the same.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.auth.Logout(h.transport.RefreshToken(r))
	h.transport.ClearSessionCookies(w)
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
