package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/authz"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

type MessageService struct {
	messages ports.MessageRepository
	listings ports.ListingRepository
	log      zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, listings ports.ListingRepository, log zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, listings: listings, log: log}
}

// ListForListing returns every message about a listing, oldest first.
func (s *MessageService) ListForListing(ctx context.Context, actor domain.Actor, listingID string) ([]*domain.Message, error) {
	listing, err := s.loadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := enforce(s.log, authz.RuleListListingMessages, actor, authz.CanListListingMessages(actor, listing)); err != nil {
		return nil, err
	}

	msgs, err := s.messages.FindMany(ctx, ports.MessageFilter{ListingID: listing.ID})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// ListForSender returns the messages one sender wrote about a listing.
func (s *MessageService) ListForSender(ctx context.Context, actor domain.Actor, listingID, senderID string) ([]*domain.Message, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return nil, domain.InvalidInput("sender id is required")
	}
	listing, err := s.loadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := enforce(s.log, authz.RuleListSenderMessages, actor, authz.CanListSenderMessages(actor, senderID)); err != nil {
		return nil, err
	}

	msgs, err := s.messages.FindMany(ctx, ports.MessageFilter{ListingID: listing.ID, SenderID: senderID})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Create stores a message from the actor about a listing.
func (s *MessageService) Create(ctx context.Context, actor domain.Actor, listingID, content string) (*domain.Message, error) {
	if err := enforce(s.log, authz.RuleCreateMessage, actor, authz.CanCreateMessage(actor)); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.InvalidInput("message content is required")
	}
	listing, err := s.loadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	created, err := s.messages.Create(ctx, &domain.Message{
		Content:   content,
		ListingID: listing.ID,
		SenderID:  authz.MessageSender(actor),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("listing_id", listing.ID).Msg("failed to create message")
		return nil, fmt.Errorf("create message: %w", err)
	}
	return created, nil
}

func (s *MessageService) loadListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	id, err := requireListingID(listingID)
	if err != nil {
		return nil, err
	}
	return s.listings.FindByID(ctx, id)
}
