package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/authz"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

type listingFixture struct {
	users    *stubUserRepo
	listings *stubListingRepo
	queue    *stubQueue
	svc      *ListingService
}

func newListingFixture() *listingFixture {
	f := &listingFixture{
		users:    newStubUserRepo(),
		listings: newStubListingRepo(),
		queue:    &stubQueue{},
	}
	f.svc = NewListingService(f.listings, f.users, f.queue, zerolog.Nop())
	return f
}

func validListingInput() ports.CreateListingInput {
	return ports.CreateListingInput{
		City:              " Cluj ",
		StreetName:        "Memorandumului",
		StreetNumber:      "28",
		AreaSize:          54.5,
		HasClimateControl: true,
		YearBuilt:         1998,
		RentPrice:         650,
		DateAvailable:     time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestListingService_Create_OwnerIsActor(t *testing.T) {
	f := newListingFixture()
	f.users.seed("u1", "u1@x.io", false)

	created, err := f.svc.Create(context.Background(), actor("u1"), validListingInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.OwnerID != "u1" {
		t.Fatalf("expected owner u1, got %q", created.OwnerID)
	}
	if created.City != "Cluj" {
		t.Fatalf("expected trimmed city, got %q", created.City)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected timestamps to be set, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}
}

func TestListingService_Create_Validation(t *testing.T) {
	f := newListingFixture()
	f.users.seed("u1", "u1@x.io", false)

	in := validListingInput()
	in.YearBuilt = 1700
	if _, err := f.svc.Create(context.Background(), actor("u1"), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for yearBuilt, got %v", err)
	}

	in = validListingInput()
	in.RentPrice = -1
	if _, err := f.svc.Create(context.Background(), actor("u1"), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for rentPrice, got %v", err)
	}
}

func TestListingService_Create_RequiresIdentityAndAccount(t *testing.T) {
	f := newListingFixture()

	if _, err := f.svc.Create(context.Background(), domain.Actor{}, validListingInput()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	// Token of a deleted account.
	if _, err := f.svc.Create(context.Background(), actor("gone"), validListingInput()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListingService_List_Filters(t *testing.T) {
	f := newListingFixture()
	f.listings.seed("l1", "u1", "Cluj")
	f.listings.seed("l2", "u2", "cluj")
	f.listings.seed("l3", "u1", "Iasi")

	all, err := f.svc.List(context.Background(), actor("u9"), ports.ListingFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 listings, got %d (%v)", len(all), err)
	}

	byCity, _ := f.svc.List(context.Background(), actor("u9"), ports.ListingFilter{City: " CLUJ "})
	if len(byCity) != 2 {
		t.Fatalf("expected 2 listings in Cluj, got %d", len(byCity))
	}

	byOwner, _ := f.svc.List(context.Background(), actor("u9"), ports.ListingFilter{OwnerID: "u1"})
	if len(byOwner) != 2 {
		t.Fatalf("expected 2 listings of u1, got %d", len(byOwner))
	}
}

func TestListingService_Get(t *testing.T) {
	f := newListingFixture()
	f.listings.seed("l1", "u1", "Cluj")

	if _, err := f.svc.Get(context.Background(), actor("u2"), "l1"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), actor("u2"), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), actor("u2"), " "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestListingService_Update_NonOwnerForbidden(t *testing.T) {
	f := newListingFixture()
	f.listings.seed("l1", "u1", "Cluj")

	_, err := f.svc.Update(context.Background(), actor("u2"), "l1", domain.ListingPatch{RentPrice: floatPtr(1)})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if domain.MessageOf(err) != authz.ReasonOwnerOrPrivileged {
		t.Fatalf("unexpected reason %q", domain.MessageOf(err))
	}
	if f.listings.listings["l1"].RentPrice != 900 {
		t.Fatalf("listing must be unchanged")
	}
}

func TestListingService_Update_OwnerAndPrivileged(t *testing.T) {
	f := newListingFixture()
	f.listings.seed("l1", "u1", "Cluj")

	updated, err := f.svc.Update(context.Background(), actor("u1"), "l1", domain.ListingPatch{RentPrice: floatPtr(700)})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.RentPrice != 700 {
		t.Fatalf("expected rentPrice 700, got %v", updated.RentPrice)
	}

	updated, err = f.svc.Update(context.Background(), admin("a1"), "l1", domain.ListingPatch{City: strPtr("Brasov")})
	if err != nil {
		t.Fatalf("privileged update failed: %v", err)
	}
	if updated.City != "Brasov" || updated.OwnerID != "u1" {
		t.Fatalf("unexpected listing: %+v", updated)
	}
}

func TestListingService_Update_NotFoundBeforeForbidden(t *testing.T) {
	f := newListingFixture()

	_, err := f.svc.Update(context.Background(), actor("u2"), "missing", domain.ListingPatch{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListingService_Update_InvalidPatch(t *testing.T) {
	f := newListingFixture()
	f.listings.seed("l1", "u1", "Cluj")

	yb := 1500
	_, err := f.svc.Update(context.Background(), actor("u1"), "l1", domain.ListingPatch{YearBuilt: &yb})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestListingService_Delete(t *testing.T) {
	f := newListingFixture()
	f.listings.seed("l1", "u1", "Cluj")

	if err := f.svc.Delete(context.Background(), actor("u2"), "l1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(f.queue.jobs) != 0 {
		t.Fatalf("denied delete must not enqueue cleanup")
	}

	if err := f.svc.Delete(context.Background(), actor("u1"), "l1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, ok := f.listings.listings["l1"]; ok {
		t.Fatalf("expected listing to be deleted")
	}
	want := domain.CleanupJob{Kind: domain.CleanupListingDeleted, SubjectID: "l1"}
	if len(f.queue.jobs) != 1 || f.queue.jobs[0] != want {
		t.Fatalf("unexpected cleanup jobs: %+v", f.queue.jobs)
	}

	if err := f.svc.Delete(context.Background(), admin("a1"), "l1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func floatPtr(v float64) *float64 { return &v }
