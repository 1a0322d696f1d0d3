package ports

import (
	"context"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

type MessageService interface {
	ListForListing(ctx context.Context, actor domain.Actor, listingID string) ([]*domain.Message, error)
	ListForSender(ctx context.Context, actor domain.Actor, listingID, senderID string) ([]*domain.Message, error)
	Create(ctx context.Context, actor domain.Actor, listingID, content string) (*domain.Message, error)
}
