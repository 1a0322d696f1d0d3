// Package credential issues and verifies session tokens and hashes account
// secrets. A Service is immutable once built and safe for concurrent use.
package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

const (
	DefaultTokenTTL = time.Hour
	DefaultHashCost = bcrypt.DefaultCost
	DefaultIssuer   = "flatfinder-api"
)

// ErrMissingSigningKey is returned by New when no signing key is configured.
var ErrMissingSigningKey = errors.New("credential: signing key is required")

// Config is the process-wide credential configuration, loaded once at startup.
type Config struct {
	SigningKey []byte
	TokenTTL   time.Duration
	Issuer     string
	// HashCost is the bcrypt work factor.
	HashCost int
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Claims is the identity embedded in a token.
type Claims struct {
	SubjectID    string
	IsPrivileged bool
}

// Session is a verified token: its claims plus the metadata needed to revoke it.
type Session struct {
	Claims    Claims
	TokenID   string
	ExpiresAt time.Time
}

type tokenClaims struct {
	IsPrivileged bool `json:"isPrivileged"`
	jwt.RegisteredClaims
}

type Service struct {
	key       []byte
	ttl       time.Duration
	issuer    string
	cost      int
	now       func() time.Time
	dummyHash []byte
}

func New(cfg Config) (*Service, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	s := &Service{
		key:    append([]byte(nil), cfg.SigningKey...),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
		cost:   cfg.HashCost,
		now:    cfg.Now,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTokenTTL
	}
	if s.issuer == "" {
		s.issuer = DefaultIssuer
	}
	if s.cost == 0 {
		s.cost = DefaultHashCost
	}
	if s.cost < bcrypt.MinCost || s.cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("credential: hash cost %d out of range [%d, %d]", s.cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if s.now == nil {
		s.now = time.Now
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("flatfinder-timing-equalizer"), s.cost)
	if err != nil {
		return nil, fmt.Errorf("credential: dummy hash: %w", err)
	}
	s.dummyHash = dummy
	return s, nil
}

// TokenTTL is the lifetime given to every issued token.
func (s *Service) TokenTTL() time.Duration { return s.ttl }

// Hash returns a salted bcrypt hash of secret.
func (s *Service) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.InvalidInput("password must be at most 72 bytes")
		}
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether secret matches hash.
func (s *Service) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// DummyVerify spends one comparison against a fixed hash. Login calls it for
// unknown emails so both failure paths take the same time.
func (s *Service) DummyVerify(secret string) {
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(secret))
}

// Issue signs a token for claims, valid for the configured TTL.
func (s *Service) Issue(claims Claims) (string, error) {
	if claims.SubjectID == "" {
		return "", domain.InvalidInput("token subject is required")
	}

	now := s.now()
	tc := tokenClaims{
		IsPrivileged: claims.IsPrivileged,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   claims.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature, algorithm, issuer and expiry. Every failure
// is reported as domain.ErrInvalidToken.
func (s *Service) VerifyToken(token string) (*Session, error) {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if tc.Subject == "" || tc.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}

	return &Session{
		Claims: Claims{
			SubjectID:    tc.Subject,
			IsPrivileged: tc.IsPrivileged,
		},
		TokenID:   tc.ID,
		ExpiresAt: tc.ExpiresAt.Time,
	}, nil
}
