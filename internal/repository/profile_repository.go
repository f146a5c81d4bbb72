package repository

import (
	"context"
	"database/sql"

	"github.com/eaglebank/signup-service/shared/models"
)

// ProfileWriteRepository inserts rows in the profiles table.
type ProfileWriteRepository struct {
	db *sql.DB
}

func NewProfileWriteRepository(db *sql.DB) *ProfileWriteRepository {
	return &ProfileWriteRepository{db: db}
}

// Create stores absent optional fields as NULL.
func (r *ProfileWriteRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (email, first_name, last_name, phone_no, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.Email,
		nullString(profile.FirstName), nullString(profile.LastName), nullString(profile.PhoneNo),
		profile.CreatedAt,
	)
	if err != nil {
		return wrapPQ("insert profile", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
