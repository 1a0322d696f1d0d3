package ports

import (
	"context"
	"time"
)

// RevocationChecker reports whether a token, or every token of a subject, has
// been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID, subjectID string) (bool, error)
}

// RevocationStore records revocations. Entries only need to outlive the
// tokens they cover, so each carries a TTL.
type RevocationStore interface {
	RevocationChecker
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	RevokeSubject(ctx context.Context, subjectID string, ttl time.Duration) error
}
