package database

import (
	"errors"
	"os"

	"github.com/thereayou/jobdesk/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection named by DATABASE_URL, migrates the
// schema and returns the repository.
func Connect() (*Database, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	// TranslateError turns the postgres duplicate-key violation into
	// gorm.ErrDuplicatedKey, which the chat resolver relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyMember{},
		&models.Job{},
		&models.Application{},
		&models.Chat{},
		&models.ChatParticipant{},
		&models.Message{},
	)
	if err != nil {
		return nil, err
	}

	return NewDatabase(db), nil
}
