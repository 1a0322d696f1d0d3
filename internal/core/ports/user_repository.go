package ports

import (
	"context"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// UserRepository persists users. Lookups of unknown ids return
// domain.ErrUserNotFound.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindMany(ctx context.Context) ([]*domain.User, error)
	// Create stores the user and returns it with its assigned id. A duplicate
	// email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateByID applies fields (keyed by stored field name) and returns the
	// updated user.
	UpdateByID(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) (bool, error)

	AddFavorite(ctx context.Context, userID, listingID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, userID, listingID string) (*domain.User, error)
	RemoveFavoriteFromAll(ctx context.Context, listingID string) (int64, error)
}
