package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eaglebank/signup-service/shared/models"
)

// UserWriteRepository inserts and removes rows in the users table.
type UserWriteRepository struct {
	db *sql.DB
}

func NewUserWriteRepository(db *sql.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

func (r *UserWriteRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, email, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.CreatedAt); err != nil {
		return wrapPQ("insert user", err)
	}
	return nil
}

// Delete hard-deletes the user row. It exists for compensation only.
func (r *UserWriteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete user %s: %w", id, ErrNotFound)
	}
	return nil
}
