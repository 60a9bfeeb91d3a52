package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"healthrecord-backend/internal/config"
	httproutes "healthrecord-backend/internal/http"
	"healthrecord-backend/internal/http/handlers"
	"healthrecord-backend/internal/http/middleware"
	"healthrecord-backend/internal/services"
	"healthrecord-backend/internal/session"
	"healthrecord-backend/pkg/security"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := run(http.ListenAndServe, config.ConnectDB); err != nil {
		log.Fatal(err)
	}
}

func run(listen func(string, http.Handler) error, connectDB func()) error {
	_ = godotenv.Load(".env")

	if connectDB != nil {
		connectDB()
	}

	addr, handler := buildServer(os.Getenv, config.DB)
	log.Println("Server running at http://localhost" + addr)
	return listen(addr, handler)
}

func buildServer(getEnv func(string) string, db *gorm.DB) (string, http.Handler) {
	cfg := config.LoadAuth(getEnv)

	signer := security.NewTokenSigner(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, cfg.Issuer)
	transport := session.NewTransport(session.Config{
		AccessCookieName:  cfg.AccessCookieName,
		RefreshCookieName: cfg.RefreshCookieName,
		Domain:            cfg.CookieDomain,
		Secure:            cfg.CookieSecure,
		SameSite:          cfg.CookieSameSite,
		AccessTTL:         cfg.AccessTTL,
		RefreshTTL:        cfg.RefreshTTL,
	})
	authService := services.NewAuthService(db, signer, cfg.BcryptCost)
	resetService := services.NewPasswordResetService(db, authService, cfg.ResetTTL)

	handler := handlers.NewAuthHandler(authService, resetService, transport)
	guard := middleware.NewGuard(signer, transport)

	mux := http.NewServeMux()
	httproutes.Routes(mux, handler, guard)

	return serverAddress(getEnv), mux
}

func serverAddress(getEnv func(string) string) string {
	port := strings.TrimSpace(getEnv("PORT"))
	if port == "" {
		port = "8080"
	}
	return ":" + port
}
