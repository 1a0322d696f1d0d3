// Package identity turns the Authorization header of a request into the
// domain.Actor the authorization rules are evaluated against.
package identity

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/credential"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

// TokenVerifier is the part of the credential service the resolver needs.
type TokenVerifier interface {
	VerifyToken(token string) (*credential.Session, error)
}

type Resolver struct {
	verifier    TokenVerifier
	revocations ports.RevocationChecker
	log         zerolog.Logger
}

// NewResolver builds a Resolver. revocations may be nil, in which case tokens
// are only checked cryptographically.
func NewResolver(verifier TokenVerifier, revocations ports.RevocationChecker, log zerolog.Logger) *Resolver {
	return &Resolver{verifier: verifier, revocations: revocations, log: log}
}

// Resolve returns the actor for a "Bearer <token>" header value.
func (r *Resolver) Resolve(ctx context.Context, header string) (domain.Actor, error) {
	session, err := r.ResolveSession(ctx, header)
	if err != nil {
		return domain.Actor{}, err
	}
	return session.Actor, nil
}

// ResolveSession is Resolve plus the token id and expiry of the credential.
func (r *Resolver) ResolveSession(ctx context.Context, header string) (*domain.Session, error) {
	token, err := BearerToken(header)
	if err != nil {
		return nil, err
	}

	verified, err := r.verifier.VerifyToken(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if r.revocations != nil {
		revoked, err := r.revocations.IsRevoked(ctx, verified.TokenID, verified.Claims.SubjectID)
		switch {
		case err != nil:
			r.log.Warn().Err(err).Str("subject", verified.Claims.SubjectID).Msg("revocation check failed, accepting token")
		case revoked:
			return nil, domain.ErrInvalidToken
		}
	}

	return &domain.Session{
		Actor: domain.Actor{
			ID:           verified.Claims.SubjectID,
			IsPrivileged: verified.Claims.IsPrivileged,
		},
		TokenID:   verified.TokenID,
		ExpiresAt: verified.ExpiresAt,
	}, nil
}

// BearerToken extracts the token from a "Bearer <token>" header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.Unauthenticated("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.Unauthenticated("invalid authorization header")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.Unauthenticated("invalid authorization header")
	}
	return token, nil
}
