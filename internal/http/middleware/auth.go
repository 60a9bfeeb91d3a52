package middleware

import (
	"net/http"

	"healthrecord-backend/internal/response"
	"healthrecord-backend/internal/session"
	"healthrecord-backend/pkg/security"
)

// AuthedHandler receives the authenticated user id as an explicit argument;
// identity never travels through request-global state.
type AuthedHandler func(w http.ResponseWriter, r *http.Request, userID uint)

// Guard validates the access token on protected routes. Validation is purely
// cryptographic; the hot path never touches the database.
type Guard struct {
	signer    *security.TokenSigner
	transport *session.Transport
}

func NewGuard(signer *security.TokenSigner, transport *session.Transport) *Guard {
	return &Guard{signer: signer, transport: transport}
}

func (g *Guard) Require(next AuthedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := g.transport.AccessToken(r)
		if raw == "" {
			response.WriteErr(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		claims, err := g.signer.ParseAccess(raw)
		if err != nil {
			response.WriteErr(w, http.StatusUnauthorized, "Token invalid")
			return
		}
		next(w, r, claims.UserID)
	}
}
