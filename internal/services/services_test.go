package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"healthrecord-backend/internal/models"
	"healthrecord-backend/pkg/security"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services%d?mode=memory&cache=shared", testDBCounter.Add(1))
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
	// sqlite allows a single writer; serialize at the pool.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.PasswordResetToken{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}
	return db
}

func newTestAuthService(t *testing.T, db *gorm.DB) (*AuthService, *security.TokenSigner) {
	t.Helper()
	signer := security.NewTokenSigner([]byte("test-secret"), 10*time.Minute, 24*time.Hour, "http://test")
	return NewAuthService(db, signer, bcrypt.MinCost), signer
}

func registerTestUser(t *testing.T, svc *AuthService, email string) *models.User {
	t.Helper()
	user, err := svc.Register(email, "StrongPass123!@#")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}
