package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/authz"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

type ListingService struct {
	listings ports.ListingRepository
	users    ports.UserRepository
	cleanup  ports.CleanupQueue
	log      zerolog.Logger
}

func NewListingService(
	listings ports.ListingRepository,
	users ports.UserRepository,
	cleanup ports.CleanupQueue,
	log zerolog.Logger,
) *ListingService {
	return &ListingService{listings: listings, users: users, cleanup: cleanup, log: log}
}

func (s *ListingService) List(ctx context.Context, actor domain.Actor, filter ports.ListingFilter) ([]*domain.Listing, error) {
	if err := enforce(s.log, authz.RuleReadListing, actor, authz.CanReadListing(actor)); err != nil {
		return nil, err
	}
	filter.City = strings.TrimSpace(filter.City)
	filter.OwnerID = strings.TrimSpace(filter.OwnerID)

	listings, err := s.listings.FindMany(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

func (s *ListingService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Listing, error) {
	id, err := requireListingID(id)
	if err != nil {
		return nil, err
	}
	if err := enforce(s.log, authz.RuleReadListing, actor, authz.CanReadListing(actor)); err != nil {
		return nil, err
	}
	return s.listings.FindByID(ctx, id)
}

// Create stores a listing owned by the actor.
func (s *ListingService) Create(ctx context.Context, actor domain.Actor, in ports.CreateListingInput) (*domain.Listing, error) {
	if err := enforce(s.log, authz.RuleCreateListing, actor, authz.CanCreateListing(actor)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing := &domain.Listing{
		City:              strings.TrimSpace(in.City),
		StreetName:        strings.TrimSpace(in.StreetName),
		StreetNumber:      strings.TrimSpace(in.StreetNumber),
		AreaSize:          in.AreaSize,
		HasClimateControl: in.HasClimateControl,
		YearBuilt:         in.YearBuilt,
		RentPrice:         in.RentPrice,
		DateAvailable:     in.DateAvailable.UTC(),
		OwnerID:           authz.ListingOwner(actor),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := listing.Validate(); err != nil {
		return nil, err
	}

	// The owner must still exist; a token can outlive its account.
	if _, err := s.users.FindByID(ctx, listing.OwnerID); err != nil {
		return nil, err
	}

	created, err := s.listings.Create(ctx, listing)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create listing")
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.log.Info().Str("listing_id", created.ID).Str("owner_id", created.OwnerID).Msg("listing created")
	return created, nil
}

func (s *ListingService) Update(ctx context.Context, actor domain.Actor, id string, patch domain.ListingPatch) (*domain.Listing, error) {
	id, err := requireListingID(id)
	if err != nil {
		return nil, err
	}
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := enforce(s.log, authz.RuleUpdateListing, actor, authz.CanUpdateListing(actor, listing)); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	fields := authz.FilterListingUpdate(patch.Changes())
	if len(fields) == 0 {
		return listing, nil
	}

	updated, err := s.listings.UpdateByID(ctx, id, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return updated, nil
}

func (s *ListingService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	id, err := requireListingID(id)
	if err != nil {
		return err
	}
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := enforce(s.log, authz.RuleDeleteListing, actor, authz.CanDeleteListing(actor, listing)); err != nil {
		return err
	}

	deleted, err := s.listings.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if !deleted {
		return domain.ErrListingNotFound
	}

	s.cleanup.Enqueue(domain.CleanupJob{Kind: domain.CleanupListingDeleted, SubjectID: id})
	s.log.Info().Str("listing_id", id).Str("actor", actor.ID).Msg("listing deleted")
	return nil
}

func requireListingID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.InvalidInput("listing id is required")
	}
	return id, nil
}
