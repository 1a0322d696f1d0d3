package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records revoked tokens and subjects in Redis.
// Key format: revoked:jti:<token_id> and revoked:sub:<subject_id>
// Entries expire once the tokens they cover could no longer verify anyway.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// IsRevoked reports whether the token, or every token of its subject, was
// revoked. Empty ids are not looked up.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID, subjectID string) (bool, error) {
	keys := revocationKeys(tokenID, subjectID)
	if len(keys) == 0 {
		return false, nil
	}
	n, err := s.client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// RevokeToken revokes a single token for ttl.
func (s *RevocationStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.revoke(ctx, tokenKey(tokenID), ttl)
}

// RevokeSubject revokes every token of a subject for ttl.
func (s *RevocationStore) RevokeSubject(ctx context.Context, subjectID string, ttl time.Duration) error {
	return s.revoke(ctx, subjectKey(subjectID), ttl)
}

func (s *RevocationStore) revoke(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke %s: %w", key, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *RevocationStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func tokenKey(tokenID string) string     { return "revoked:jti:" + tokenID }
func subjectKey(subjectID string) string { return "revoked:sub:" + subjectID }

func revocationKeys(tokenID, subjectID string) []string {
	keys := make([]string, 0, 2)
	if tokenID != "" {
		keys = append(keys, tokenKey(tokenID))
	}
	if subjectID != "" {
		keys = append(keys, subjectKey(subjectID))
	}
	return keys
}
