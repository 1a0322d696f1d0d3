package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/authz"
	"github.com/flatfinder/flatfinder-api/internal/core/credential"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
	"github.com/flatfinder/flatfinder-api/internal/pkg/metrics"
)

// Credentials is the subset of credential.Service used by the auth flows.
type Credentials interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
	DummyVerify(secret string)
	Issue(claims credential.Claims) (string, error)
}

// AuthService implements registration, login and logout.
type AuthService struct {
	users       ports.UserRepository
	creds       Credentials
	revocations ports.RevocationStore
	privileged  map[string]struct{}
	log         zerolog.Logger
}

// NewAuthService builds the auth flows. privilegedEmails lists the addresses
// that receive the privilege flag on registration. revocations may be nil, in
// which case logout cannot invalidate tokens.
func NewAuthService(
	users ports.UserRepository,
	creds Credentials,
	revocations ports.RevocationStore,
	privilegedEmails []string,
	log zerolog.Logger,
) *AuthService {
	privileged := make(map[string]struct{}, len(privilegedEmails))
	for _, e := range privilegedEmails {
		if n := domain.NormalizeEmail(e); n != "" {
			privileged[n] = struct{}{}
		}
	}
	return &AuthService{
		users:       users,
		creds:       creds,
		revocations: revocations,
		privileged:  privileged,
		log:         log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	switch {
	case email == "":
		return nil, domain.InvalidInput("email is required")
	case in.Password == "":
		return nil, domain.InvalidInput("password is required")
	case firstName == "":
		return nil, domain.InvalidInput("firstName is required")
	case lastName == "":
		return nil, domain.InvalidInput("lastName is required")
	}

	taken := true
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("register: find by email: %w", err)
		}
		taken = false
	}
	if d := authz.CanRegister(taken); !d.Allowed {
		metrics.AuthzDecisionsTotal.WithLabelValues(authz.RuleRegister, "denied").Inc()
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.creds.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	_, isPrivileged := s.privileged[email]
	now := time.Now().UTC()
	var birthDate *time.Time
	if in.BirthDate != nil {
		bd := in.BirthDate.UTC()
		birthDate = &bd
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:              email,
		SecretHash:         hash,
		FirstName:          firstName,
		LastName:           lastName,
		BirthDate:          birthDate,
		IsPrivileged:       isPrivileged,
		FavoriteListingIDs: []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrEmailTaken
		}
		s.log.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Bool("privileged", created.IsPrivileged).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.InvalidInput("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.creds.DummyVerify(password)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidLogin
		}
		return "", nil, fmt.Errorf("login: find by email: %w", err)
	}

	if !s.creds.Verify(password, user.SecretHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidLogin
	}

	token, err := s.creds.Issue(credential.Claims{
		SubjectID:    user.ID,
		IsPrivileged: user.IsPrivileged,
	})
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, session domain.Session) error {
	if !session.Actor.Authenticated() {
		return domain.ErrAuthRequired
	}
	if s.revocations == nil {
		s.log.Warn().Str("user_id", session.Actor.ID).Msg("no revocation store configured, token stays valid until expiry")
		return nil
	}
	if session.TokenID == "" {
		return domain.ErrInvalidToken
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.RevokeToken(ctx, session.TokenID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info().Str("user_id", session.Actor.ID).Msg("token revoked")
	return nil
}
