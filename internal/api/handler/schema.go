package handler

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// dateLayout is the short form accepted for calendar dates.
const dateLayout = "2006-01-02"

// flexTime accepts either an RFC 3339 timestamp or a plain YYYY-MM-DD date.
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, dateLayout} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
}

// ptr returns nil for a missing value so patches leave the field untouched.
func (t *flexTime) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// --- Auth ---

type registerRequest struct {
	Email     string    `json:"email"     validate:"required,email"`
	Password  string    `json:"password"  validate:"required"`
	FirstName string    `json:"firstName" validate:"required"`
	LastName  string    `json:"lastName"  validate:"required"`
	BirthDate *flexTime `json:"birthDate" swaggertype:"string" example:"1990-04-12"`
}

func (r *registerRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user"`
}

// --- Users ---

// updateUserRequest carries a profile update. UserID selects another account
// and is honored for privileged callers only.
type updateUserRequest struct {
	UserID    string    `json:"userId"`
	FirstName *string   `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string   `json:"lastName"  validate:"omitempty,min=1"`
	BirthDate *flexTime `json:"birthDate" swaggertype:"string"`
}

type deleteUserRequest struct {
	UserID string `json:"userId"`
}

type userResponse struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	BirthDate          *time.Time `json:"birthDate,omitempty"`
	IsPrivileged       bool       `json:"isPrivileged"`
	FavoriteListingIDs []string   `json:"favoriteListingIds"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// --- Listings ---

// createListingRequest has no owner field; the owner is the caller.
type createListingRequest struct {
	City              string   `json:"city"              validate:"required"`
	StreetName        string   `json:"streetName"        validate:"required"`
	StreetNumber      string   `json:"streetNumber"      validate:"required"`
	AreaSize          float64  `json:"areaSize"          validate:"gte=0"`
	HasClimateControl bool     `json:"hasClimateControl"`
	YearBuilt         int      `json:"yearBuilt"         validate:"required,gte=1800"`
	RentPrice         float64  `json:"rentPrice"         validate:"gte=0"`
	DateAvailable     flexTime `json:"dateAvailable"     swaggertype:"string" example:"2026-11-01"`
}

func (r *createListingRequest) normalize() {
	r.City = strings.TrimSpace(r.City)
	r.StreetName = strings.TrimSpace(r.StreetName)
	r.StreetNumber = strings.TrimSpace(r.StreetNumber)
}

type updateListingRequest struct {
	ListingID         string    `json:"listingId"`
	City              *string   `json:"city"              validate:"omitempty,min=1"`
	StreetName        *string   `json:"streetName"        validate:"omitempty,min=1"`
	StreetNumber      *string   `json:"streetNumber"      validate:"omitempty,min=1"`
	AreaSize          *float64  `json:"areaSize"          validate:"omitempty,gte=0"`
	HasClimateControl *bool     `json:"hasClimateControl"`
	YearBuilt         *int      `json:"yearBuilt"         validate:"omitempty,gte=1800"`
	RentPrice         *float64  `json:"rentPrice"         validate:"omitempty,gte=0"`
	DateAvailable     *flexTime `json:"dateAvailable"     swaggertype:"string"`
}

type deleteListingRequest struct {
	ListingID string `json:"listingId"`
}

type listingResponse struct {
	ID                string    `json:"id"`
	City              string    `json:"city"`
	StreetName        string    `json:"streetName"`
	StreetNumber      string    `json:"streetNumber"`
	AreaSize          float64   `json:"areaSize"`
	HasClimateControl bool      `json:"hasClimateControl"`
	YearBuilt         int       `json:"yearBuilt"`
	RentPrice         float64   `json:"rentPrice"`
	DateAvailable     time.Time `json:"dateAvailable"`
	OwnerID           string    `json:"ownerId"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// --- Messages ---

// createMessageRequest has no sender field; the sender is the caller.
type createMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (r *createMessageRequest) normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

type messageResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ListingID string    `json:"listingId"`
	SenderID  string    `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
}
