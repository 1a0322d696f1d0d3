package ports

import (
	"context"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// UserService exposes account operations. targetID may be empty, in which
// case the actor's own account is used.
type UserService interface {
	List(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, targetID string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, targetID string) error
	AddFavorite(ctx context.Context, actor domain.Actor, listingID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, actor domain.Actor, listingID string) (*domain.User, error)
}
