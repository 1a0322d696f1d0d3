package ports

import (
	"context"
	"time"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// CreateListingInput carries a new listing. The owner is always the actor and
// therefore has no field here.
type CreateListingInput struct {
	City              string
	StreetName        string
	StreetNumber      string
	AreaSize          float64
	HasClimateControl bool
	YearBuilt         int
	RentPrice         float64
	DateAvailable     time.Time
}

type ListingService interface {
	List(ctx context.Context, actor domain.Actor, filter ListingFilter) ([]*domain.Listing, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Listing, error)
	Create(ctx context.Context, actor domain.Actor, input CreateListingInput) (*domain.Listing, error)
	Update(ctx context.Context, actor domain.Actor, id string, patch domain.ListingPatch) (*domain.Listing, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
