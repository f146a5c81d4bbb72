package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/signup-service/shared/models"
	sharedredis "github.com/eaglebank/signup-service/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const userViewKeyPrefix = "signup:user:view:"

// UserReadRepository serves provisioned-user views from Redis, falling back to a
// users/profiles join in PostgreSQL on a miss. A nil Redis client disables caching.
type UserReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.ProvisionedUserView]
}

func NewUserReadRepository(db *sql.DB, redisClient *goredis.Client, ttl time.Duration) *UserReadRepository {
	return &UserReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.ProvisionedUserView](redisClient, ttl),
	}
}

func (r *UserReadRepository) GetByID(ctx context.Context, id string) (*models.ProvisionedUserView, error) {
	if view, ok := r.cache.Get(ctx, userViewKeyPrefix+id); ok {
		return view, nil
	}

	query := `
		SELECT u.id, u.email, u.created_at,
			   p.email, p.first_name, p.last_name, p.phone_no
		FROM users u
		LEFT JOIN profiles p ON p.email = u.email
		WHERE u.id = $1
	`
	var view models.ProvisionedUserView
	var profileEmail, firstName, lastName, phoneNo sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.Email, &view.CreatedAt,
		&profileEmail, &firstName, &lastName, &phoneNo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if profileEmail.Valid {
		view.Profile = &models.ProfileView{
			FirstName: firstName.String,
			LastName:  lastName.String,
			PhoneNo:   phoneNo.String,
		}
	}

	// Only complete users are cached; an orphan may still be cleaned up.
	if view.Profile != nil {
		r.CacheView(ctx, &view)
	}
	return &view, nil
}

// CacheView stores or refreshes the Redis read model for a user.
func (r *UserReadRepository) CacheView(ctx context.Context, view *models.ProvisionedUserView) {
	r.cache.Set(ctx, userViewKeyPrefix+view.ID, view)
}

// InvalidateView removes the Redis read model entry for a user.
func (r *UserReadRepository) InvalidateView(ctx context.Context, userID string) {
	r.cache.Delete(ctx, userViewKeyPrefix+userID)
}
