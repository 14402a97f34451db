package database

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"palaver/internal/domain"
)

// Seed inserts a couple of demo accounts for local development.
// Existing usernames are left untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []domain.User{
		{Username: "alice", Email: "alice@example.com", PasswordHash: string(hash)},
		{Username: "bob", Email: "bob@example.com", PasswordHash: string(hash)},
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&users).Error
}
