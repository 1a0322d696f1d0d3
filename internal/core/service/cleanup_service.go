package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
	"github.com/flatfinder/flatfinder-api/internal/pkg/metrics"
)

type cleanupService struct {
	users    ports.UserRepository
	listings ports.ListingRepository
	messages ports.MessageRepository
	log      zerolog.Logger
}

// NewCleanupService returns the cascade run after users and listings are
// deleted.
func NewCleanupService(
	users ports.UserRepository,
	listings ports.ListingRepository,
	messages ports.MessageRepository,
	log zerolog.Logger,
) ports.CleanupService {
	return &cleanupService{users: users, listings: listings, messages: messages, log: log}
}

// Process runs one job. Every step is idempotent, so a job may be retried.
func (s *cleanupService) Process(ctx context.Context, job domain.CleanupJob) error {
	start := time.Now()
	var err error
	switch job.Kind {
	case domain.CleanupListingDeleted:
		err = s.listingDeleted(ctx, job.SubjectID)
	case domain.CleanupUserDeleted:
		err = s.userDeleted(ctx, job.SubjectID)
	default:
		err = fmt.Errorf("cleanup: unknown job kind %q", job.Kind)
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.CleanupJobsTotal.WithLabelValues(string(job.Kind), result).Inc()
	metrics.CleanupDuration.WithLabelValues(string(job.Kind)).Observe(time.Since(start).Seconds())
	return err
}

// listingDeleted removes the messages and favorites that pointed at a listing.
func (s *cleanupService) listingDeleted(ctx context.Context, listingID string) error {
	removed, err := s.messages.DeleteByListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("cleanup listing %s: messages: %w", listingID, err)
	}
	unfavorited, err := s.users.RemoveFavoriteFromAll(ctx, listingID)
	if err != nil {
		return fmt.Errorf("cleanup listing %s: favorites: %w", listingID, err)
	}

	s.log.Info().
		Str("listing_id", listingID).
		Int64("messages_removed", removed).
		Int64("favorites_removed", unfavorited).
		Msg("listing cleanup done")
	return nil
}

// userDeleted removes the user's listings (with their messages and favorites)
// and every message the user sent.
func (s *cleanupService) userDeleted(ctx context.Context, userID string) error {
	ids, err := s.listings.FindIDsByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("cleanup user %s: owned listings: %w", userID, err)
	}
	for _, id := range ids {
		if err := s.listingDeleted(ctx, id); err != nil {
			return err
		}
	}
	listingsRemoved, err := s.listings.DeleteByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("cleanup user %s: delete listings: %w", userID, err)
	}
	sent, err := s.messages.DeleteBySender(ctx, userID)
	if err != nil {
		return fmt.Errorf("cleanup user %s: sent messages: %w", userID, err)
	}

	s.log.Info().
		Str("user_id", userID).
		Int64("listings_removed", listingsRemoved).
		Int64("messages_removed", sent).
		Msg("user cleanup done")
	return nil
}
