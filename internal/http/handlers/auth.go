package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"healthrecord-backend/internal/models"
	"healthrecord-backend/internal/response"
	"healthrecord-backend/internal/services"
	"healthrecord-backend/internal/session"
)

// AuthHandler exposes the auth coordinators over HTTP. Status mapping lives
// here; the services only return typed results.
type AuthHandler struct {
	auth      *services.AuthService
	reset     *services.PasswordResetService
	transport *session.Transport
}

func NewAuthHandler(auth *services.AuthService, reset *services.PasswordResetService, transport *session.Transport) *AuthHandler {
	return &AuthHandler{auth: auth, reset: reset, transport: transport}
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *credentialsInput) normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in *credentialsInput) valid() bool {
	return in.Email != "" && strings.Contains(in.Email, "@") && len(in.Password) >= 8
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in credentialsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.WriteErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	in.normalize()
	if !in.valid() {
		response.WriteErr(w, http.StatusBadRequest, "a valid email and a password of at least 8 characters are required")
		return
	}

	user, err := h.auth.Register(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			response.WriteErr(w, http.StatusConflict, "email already registered")
			return
		}
		response.WriteErr(w, http.StatusInternalServerError, "could not register user")
		return
	}
	h.respondWithSession(w, user, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in credentialsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.WriteErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	in.normalize()
	if in.Email == "" || in.Password == "" {
		response.WriteErr(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.auth.Login(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.WriteErr(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		response.WriteErr(w, http.StatusInternalServerError, "could not log in")
		return
	}
	h.respondWithSession(w, user, http.StatusOK)
}

// respondWithSession issues a token pair, sets both session cookies and
// writes the user payload.
func (h *AuthHandler) respondWithSession(w http.ResponseWriter, user *models.User, status int) {
	pair, err := h.auth.IssueTokenPair(user)
	if err != nil {
		response.WriteErr(w, http.StatusInternalServerError, "could not issue session tokens")
		return
	}
	h.transport.SetSessionCookies(w, pair.Access, pair.Refresh)
	response.WriteJSON(w, status, map[string]any{"user": userPayload(user)})
}

func userPayload(user *models.User) map[string]any {
	return map[string]any{
		"id":    user.ID,
		"email": user.Email,
	}
}
