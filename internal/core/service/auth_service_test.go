package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

func newTestAuthService(t *testing.T, repo *stubUserRepo, revocations ports.RevocationStore, privileged ...string) *AuthService {
	t.Helper()
	return NewAuthService(repo, newTestCredentials(t), revocations, privileged, zerolog.Nop())
}

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		Email:     email,
		Password:  "s3cret-pass",
		FirstName: "Ana",
		LastName:  "Pop",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, nil)

	user, err := svc.Register(context.Background(), registerInput("  Ana@Example.COM "))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.SecretHash == "" || user.SecretHash == "s3cret-pass" {
		t.Fatalf("expected secret to be hashed, got %q", user.SecretHash)
	}
	if user.IsPrivileged {
		t.Fatalf("expected regular account")
	}
	if user.FavoriteListingIDs == nil {
		t.Fatalf("expected empty favorites slice, got nil")
	}
}

func TestAuthService_Register_EmailTakenAfterNormalization(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, nil)

	if _, err := svc.Register(context.Background(), registerInput("A@B.com ")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput("a@b.com"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if domain.MessageOf(err) != "email already registered" {
		t.Fatalf("unexpected message: %q", domain.MessageOf(err))
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(t, newStubUserRepo(), nil)

	cases := map[string]ports.RegisterInput{
		"no email":      {Password: "p", FirstName: "a", LastName: "b"},
		"no password":   {Email: "x@y.z", FirstName: "a", LastName: "b"},
		"no first name": {Email: "x@y.z", Password: "p", FirstName: "  ", LastName: "b"},
		"no last name":  {Email: "x@y.z", Password: "p", FirstName: "a"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_PrivilegeFromConfigOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, nil, "Root@FlatFinder.io")

	admin, err := svc.Register(context.Background(), registerInput("root@flatfinder.io"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !admin.IsPrivileged {
		t.Fatalf("expected configured address to be privileged")
	}

	other, err := svc.Register(context.Background(), registerInput("someone@flatfinder.io"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if other.IsPrivileged {
		t.Fatalf("expected unlisted address to be regular")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	creds := newTestCredentials(t)
	svc := NewAuthService(repo, creds, nil, []string{"carol@example.com"}, zerolog.Nop())

	registered, err := svc.Register(context.Background(), registerInput("carol@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), " CAROL@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	session, err := creds.VerifyToken(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if session.Claims.SubjectID != registered.ID || !session.Claims.IsPrivileged {
		t.Fatalf("unexpected claims: %+v", session.Claims)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, nil)
	if _, err := svc.Register(context.Background(), registerInput("dave@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.com", "badpass")

	if !errors.Is(wrongPass, domain.ErrInvalidLogin) || !errors.Is(unknown, domain.ErrInvalidLogin) {
		t.Fatalf("expected ErrInvalidLogin for both, got %v / %v", wrongPass, unknown)
	}
	if !errors.Is(unknown, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated kind, got %v", unknown)
	}
}

func TestAuthService_Logout_RevokesTokenForRemainingLifetime(t *testing.T) {
	revocations := newStubRevocations()
	svc := newTestAuthService(t, newStubUserRepo(), revocations)

	session := domain.Session{
		Actor:     actor("u1"),
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	if err := svc.Logout(context.Background(), session); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	ttl, ok := revocations.tokens["jti-1"]
	if !ok {
		t.Fatalf("expected token to be revoked")
	}
	if ttl <= 0 || ttl > 30*time.Minute {
		t.Fatalf("unexpected revocation ttl: %v", ttl)
	}
}

func TestAuthService_Logout_RequiresIdentity(t *testing.T) {
	svc := newTestAuthService(t, newStubUserRepo(), newStubRevocations())

	if err := svc.Logout(context.Background(), domain.Session{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestAuthService_Logout_StoreErrorPropagates(t *testing.T) {
	revocations := newStubRevocations()
	revocations.err = errors.New("redis down")
	svc := newTestAuthService(t, newStubUserRepo(), revocations)

	err := svc.Logout(context.Background(), domain.Session{
		Actor:     actor("u1"),
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Minute),
	})
	if err == nil {
		t.Fatalf("expected error from revocation store")
	}
}
