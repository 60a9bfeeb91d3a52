package config

import (
	"log"
	"os"
	"strings"
	"sync"

	"healthrecord-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	DB   *gorm.DB
	once sync.Once
)

func ConnectDB() {
	once.Do(func() {
		db, err := connectAndMigrate(os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal("Error connecting PostgreSQL:", err)
		}
		DB = db
		log.Println("DB connected and migrated")
	})
}

func connectAndMigrate(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file::") {
		dialector = sqlite.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}

	// TranslateError maps driver unique-violations to gorm.ErrDuplicatedKey,
	// which Register relies on when a race slips past its pre-check.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
