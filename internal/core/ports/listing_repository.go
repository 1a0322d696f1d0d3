package ports

import (
	"context"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// ListingFilter narrows FindMany. Empty fields do not filter.
type ListingFilter struct {
	OwnerID string
	City    string // case-insensitive exact match
}

// ListingRepository persists listings. Lookups of unknown ids return
// domain.ErrListingNotFound.
type ListingRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	FindMany(ctx context.Context, filter ListingFilter) ([]*domain.Listing, error)
	Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	UpdateByID(ctx context.Context, id string, fields map[string]any) (*domain.Listing, error)
	DeleteByID(ctx context.Context, id string) (bool, error)

	FindIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
