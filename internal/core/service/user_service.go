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

type UserService struct {
	users       ports.UserRepository
	listings    ports.ListingRepository
	revocations ports.RevocationStore
	cleanup     ports.CleanupQueue
	tokenTTL    time.Duration
	log         zerolog.Logger
}

// NewUserService builds the account service. Deleting an account revokes the
// subject for tokenTTL so outstanding tokens stop resolving; revocations may
// be nil.
func NewUserService(
	users ports.UserRepository,
	listings ports.ListingRepository,
	revocations ports.RevocationStore,
	cleanup ports.CleanupQueue,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:       users,
		listings:    listings,
		revocations: revocations,
		cleanup:     cleanup,
		tokenTTL:    tokenTTL,
		log:         log,
	}
}

func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if err := enforce(s.log, authz.RuleListUsers, actor, authz.CanListUsers(actor)); err != nil {
		return nil, err
	}
	users, err := s.users.FindMany(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.InvalidInput("user id is required")
	}
	if err := enforce(s.log, authz.RuleReadUser, actor, authz.CanReadUser(actor, id)); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, actor domain.Actor, targetID string, patch domain.UserPatch) (*domain.User, error) {
	target := authz.ResolveUserTarget(actor, strings.TrimSpace(targetID))
	if err := enforce(s.log, authz.RuleUpdateUser, actor, authz.CanUpdateUser(actor, target)); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	fields := authz.FilterUserUpdate(patch.Changes())
	if len(fields) == 0 {
		return s.users.FindByID(ctx, target)
	}

	updated, err := s.users.UpdateByID(ctx, target, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Actor, targetID string) error {
	target := authz.ResolveUserTarget(actor, strings.TrimSpace(targetID))
	if err := enforce(s.log, authz.RuleDeleteUser, actor, authz.CanDeleteUser(actor, target)); err != nil {
		return err
	}

	deleted, err := s.users.DeleteByID(ctx, target)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return domain.ErrUserNotFound
	}

	if s.revocations != nil {
		if err := s.revocations.RevokeSubject(ctx, target, s.tokenTTL); err != nil {
			s.log.Warn().Err(err).Str("user_id", target).Msg("failed to revoke tokens of deleted user")
		}
	}
	s.cleanup.Enqueue(domain.CleanupJob{Kind: domain.CleanupUserDeleted, SubjectID: target})

	s.log.Info().Str("user_id", target).Str("actor", actor.ID).Msg("user deleted")
	return nil
}

func (s *UserService) AddFavorite(ctx context.Context, actor domain.Actor, listingID string) (*domain.User, error) {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return nil, domain.InvalidInput("listing id is required")
	}
	if err := enforce(s.log, authz.RuleManageFavorites, actor, authz.CanManageFavorites(actor, actor.ID)); err != nil {
		return nil, err
	}
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.users.AddFavorite(ctx, actor.ID, listingID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, actor domain.Actor, listingID string) (*domain.User, error) {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return nil, domain.InvalidInput("listing id is required")
	}
	if err := enforce(s.log, authz.RuleManageFavorites, actor, authz.CanManageFavorites(actor, actor.ID)); err != nil {
		return nil, err
	}
	return s.users.RemoveFavorite(ctx, actor.ID, listingID)
}
