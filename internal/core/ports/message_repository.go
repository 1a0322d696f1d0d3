package ports

import (
	"context"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// MessageFilter narrows FindMany. ListingID is required; SenderID is optional.
type MessageFilter struct {
	ListingID string
	SenderID  string
}

// MessageRepository persists messages. Messages are never updated.
type MessageRepository interface {
	// FindMany returns matching messages ordered by creation time, oldest first.
	FindMany(ctx context.Context, filter MessageFilter) ([]*domain.Message, error)
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	DeleteByListing(ctx context.Context, listingID string) (int64, error)
	DeleteBySender(ctx context.Context, senderID string) (int64, error)
}
