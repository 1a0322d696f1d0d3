package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/flatfinder/flatfinder-api/internal/core/credential"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.FavoriteListingIDs != nil {
		clone.FavoriteListingIDs = append(make([]string, 0, len(u.FavoriteListingIDs)), u.FavoriteListingIDs...)
	}
	return &clone
}

// seed stores a user under a fixed id.
func (r *stubUserRepo) seed(id, email string, privileged bool) *domain.User {
	u := &domain.User{
		ID:           id,
		Email:        email,
		FirstName:    "First",
		LastName:     "Last",
		IsPrivileged: privileged,
	}
	r.users[id] = u
	return cloneUser(u)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindMany(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create mirrors the unique email index of the real collection.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) UpdateByID(_ context.Context, id string, fields map[string]any) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for k, v := range fields {
		switch k {
		case "firstName":
			u.FirstName = v.(string)
		case "lastName":
			u.LastName = v.(string)
		case "birthDate":
			bd := v.(time.Time)
			u.BirthDate = &bd
		case "email":
			u.Email = v.(string)
		case "isPrivileged":
			u.IsPrivileged = v.(bool)
		}
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *stubUserRepo) AddFavorite(_ context.Context, userID, listingID string) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, id := range u.FavoriteListingIDs {
		if id == listingID {
			return cloneUser(u), nil
		}
	}
	u.FavoriteListingIDs = append(u.FavoriteListingIDs, listingID)
	return cloneUser(u), nil
}

func (r *stubUserRepo) RemoveFavorite(_ context.Context, userID, listingID string) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.FavoriteListingIDs = without(u.FavoriteListingIDs, listingID)
	return cloneUser(u), nil
}

func (r *stubUserRepo) RemoveFavoriteFromAll(_ context.Context, listingID string) (int64, error) {
	var n int64
	for _, u := range r.users {
		before := len(u.FavoriteListingIDs)
		u.FavoriteListingIDs = without(u.FavoriteListingIDs, listingID)
		if len(u.FavoriteListingIDs) != before {
			n++
		}
	}
	return n, nil
}

func without(ids []string, drop string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

type stubListingRepo struct {
	listings map[string]*domain.Listing
	nextID   int
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{listings: make(map[string]*domain.Listing)}
}

func cloneListing(l *domain.Listing) *domain.Listing {
	clone := *l
	return &clone
}

func (r *stubListingRepo) seed(id, ownerID, city string) *domain.Listing {
	l := &domain.Listing{
		ID:            id,
		City:          city,
		StreetName:    "Main",
		StreetNumber:  "1",
		AreaSize:      50,
		YearBuilt:     1990,
		RentPrice:     900,
		DateAvailable: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		OwnerID:       ownerID,
	}
	r.listings[id] = l
	return cloneListing(l)
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return cloneListing(l), nil
}

func (r *stubListingRepo) FindMany(_ context.Context, f ports.ListingFilter) ([]*domain.Listing, error) {
	var out []*domain.Listing
	for _, l := range r.listings {
		if f.OwnerID != "" && l.OwnerID != f.OwnerID {
			continue
		}
		if f.City != "" && !strings.EqualFold(l.City, f.City) {
			continue
		}
		out = append(out, cloneListing(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubListingRepo) Create(_ context.Context, listing *domain.Listing) (*domain.Listing, error) {
	r.nextID++
	stored := cloneListing(listing)
	stored.ID = fmt.Sprintf("listing-%d", r.nextID)
	r.listings[stored.ID] = stored
	return cloneListing(stored), nil
}

func (r *stubListingRepo) UpdateByID(_ context.Context, id string, fields map[string]any) (*domain.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	for k, v := range fields {
		switch k {
		case "city":
			l.City = v.(string)
		case "streetName":
			l.StreetName = v.(string)
		case "streetNumber":
			l.StreetNumber = v.(string)
		case "areaSize":
			l.AreaSize = v.(float64)
		case "hasClimateControl":
			l.HasClimateControl = v.(bool)
		case "yearBuilt":
			l.YearBuilt = v.(int)
		case "rentPrice":
			l.RentPrice = v.(float64)
		case "dateAvailable":
			l.DateAvailable = v.(time.Time)
		case "ownerId":
			l.OwnerID = v.(string)
		}
	}
	return cloneListing(l), nil
}

func (r *stubListingRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	if _, ok := r.listings[id]; !ok {
		return false, nil
	}
	delete(r.listings, id)
	return true, nil
}

func (r *stubListingRepo) FindIDsByOwner(_ context.Context, ownerID string) ([]string, error) {
	var ids []string
	for id, l := range r.listings {
		if l.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *stubListingRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for id, l := range r.listings {
		if l.OwnerID == ownerID {
			delete(r.listings, id)
			n++
		}
	}
	return n, nil
}

type stubMessageRepo struct {
	messages []*domain.Message
	nextID   int
}

func newStubMessageRepo() *stubMessageRepo { return &stubMessageRepo{} }

func (r *stubMessageRepo) seed(listingID, senderID, content string) {
	r.nextID++
	r.messages = append(r.messages, &domain.Message{
		ID:        fmt.Sprintf("msg-%d", r.nextID),
		Content:   content,
		ListingID: listingID,
		SenderID:  senderID,
		CreatedAt: time.Date(2026, 1, 1, 0, r.nextID, 0, 0, time.UTC),
	})
}

func (r *stubMessageRepo) FindMany(_ context.Context, f ports.MessageFilter) ([]*domain.Message, error) {
	out := []*domain.Message{}
	for _, m := range r.messages {
		if m.ListingID != f.ListingID {
			continue
		}
		if f.SenderID != "" && m.SenderID != f.SenderID {
			continue
		}
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.nextID++
	stored := *m
	stored.ID = fmt.Sprintf("msg-%d", r.nextID)
	r.messages = append(r.messages, &stored)
	clone := stored
	return &clone, nil
}

func (r *stubMessageRepo) deleteWhere(match func(*domain.Message) bool) int64 {
	kept := r.messages[:0]
	var n int64
	for _, m := range r.messages {
		if match(m) {
			n++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return n
}

func (r *stubMessageRepo) DeleteByListing(_ context.Context, listingID string) (int64, error) {
	return r.deleteWhere(func(m *domain.Message) bool { return m.ListingID == listingID }), nil
}

func (r *stubMessageRepo) DeleteBySender(_ context.Context, senderID string) (int64, error) {
	return r.deleteWhere(func(m *domain.Message) bool { return m.SenderID == senderID }), nil
}

// ---------------------------------------------------------------------------
// Queue and revocation stubs
// ---------------------------------------------------------------------------

type stubQueue struct {
	mu   sync.Mutex
	jobs []domain.CleanupJob
}

func (q *stubQueue) Enqueue(job domain.CleanupJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
}

type stubRevocations struct {
	tokens   map[string]time.Duration
	subjects map[string]time.Duration
	err      error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{
		tokens:   make(map[string]time.Duration),
		subjects: make(map[string]time.Duration),
	}
}

func (s *stubRevocations) IsRevoked(_ context.Context, tokenID, subjectID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, tok := s.tokens[tokenID]
	_, sub := s.subjects[subjectID]
	return tok || sub, nil
}

func (s *stubRevocations) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.tokens[tokenID] = ttl
	return nil
}

func (s *stubRevocations) RevokeSubject(_ context.Context, subjectID string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.subjects[subjectID] = ttl
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestCredentials(t *testing.T) *credential.Service {
	t.Helper()
	creds, err := credential.New(credential.Config{
		SigningKey: []byte("test-signing-key"),
		HashCost:   bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("credential.New: %v", err)
	}
	return creds
}

func actor(id string) domain.Actor { return domain.Actor{ID: id} }

func admin(id string) domain.Actor { return domain.Actor{ID: id, IsPrivileged: true} }

func strPtr(s string) *string { return &s }
