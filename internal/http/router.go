package http

import (
	"net/http"

	"healthrecord-backend/internal/http/handlers"
	"healthrecord-backend/internal/http/middleware"
)

func Routes(mux *http.ServeMux, h *handlers.AuthHandler, guard *middleware.Guard) {
	mux.HandleFunc("/health", handlers.Health)

	// Auth
	mux.HandleFunc("/auth/register", h.Register)
	mux.HandleFunc("/auth/login", h.Login)
	mux.HandleFunc("/auth/refresh", h.Refresh)
	mux.HandleFunc("/auth/logout", h.Logout)
	mux.HandleFunc("/auth/password/forgot", h.ForgotPassword)
	mux.HandleFunc("/auth/password/reset", h.ResetPassword)

	// Profile / security
	mux.HandleFunc("/me", guard.Require(h.Me))
	mux.HandleFunc("/me/security", guard.Require(h.UpdateSecurity))
}
