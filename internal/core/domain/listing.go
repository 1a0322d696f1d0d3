package domain

import (
	"strings"
	"time"
)

const MinYearBuilt = 1800

// Listing is a flat offered for rent. OwnerID is fixed at creation.
type Listing struct {
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

// Validate checks the field invariants of a complete listing.
func (l *Listing) Validate() error {
	switch {
	case strings.TrimSpace(l.City) == "":
		return InvalidInput("city is required")
	case strings.TrimSpace(l.StreetName) == "":
		return InvalidInput("streetName is required")
	case strings.TrimSpace(l.StreetNumber) == "":
		return InvalidInput("streetNumber is required")
	case l.AreaSize < 0:
		return InvalidInput("areaSize must be at least 0")
	case l.YearBuilt < MinYearBuilt:
		return InvalidInput("yearBuilt must be at least 1800")
	case l.RentPrice < 0:
		return InvalidInput("rentPrice must be at least 0")
	case l.DateAvailable.IsZero():
		return InvalidInput("dateAvailable is required")
	}
	return nil
}

// ListingPatch carries a listing update. Nil fields are left untouched.
type ListingPatch struct {
	City              *string
	StreetName        *string
	StreetNumber      *string
	AreaSize          *float64
	HasClimateControl *bool
	YearBuilt         *int
	RentPrice         *float64
	DateAvailable     *time.Time
}

// Changes returns the submitted fields keyed by their stored names.
func (p ListingPatch) Changes() map[string]any {
	out := make(map[string]any, 8)
	if p.City != nil {
		out["city"] = strings.TrimSpace(*p.City)
	}
	if p.StreetName != nil {
		out["streetName"] = strings.TrimSpace(*p.StreetName)
	}
	if p.StreetNumber != nil {
		out["streetNumber"] = strings.TrimSpace(*p.StreetNumber)
	}
	if p.AreaSize != nil {
		out["areaSize"] = *p.AreaSize
	}
	if p.HasClimateControl != nil {
		out["hasClimateControl"] = *p.HasClimateControl
	}
	if p.YearBuilt != nil {
		out["yearBuilt"] = *p.YearBuilt
	}
	if p.RentPrice != nil {
		out["rentPrice"] = *p.RentPrice
	}
	if p.DateAvailable != nil {
		out["dateAvailable"] = p.DateAvailable.UTC()
	}
	return out
}

// Validate applies the listing invariants to the fields present in the patch.
func (p ListingPatch) Validate() error {
	switch {
	case p.City != nil && strings.TrimSpace(*p.City) == "":
		return InvalidInput("city cannot be empty")
	case p.StreetName != nil && strings.TrimSpace(*p.StreetName) == "":
		return InvalidInput("streetName cannot be empty")
	case p.StreetNumber != nil && strings.TrimSpace(*p.StreetNumber) == "":
		return InvalidInput("streetNumber cannot be empty")
	case p.AreaSize != nil && *p.AreaSize < 0:
		return InvalidInput("areaSize must be at least 0")
	case p.YearBuilt != nil && *p.YearBuilt < MinYearBuilt:
		return InvalidInput("yearBuilt must be at least 1800")
	case p.RentPrice != nil && *p.RentPrice < 0:
		return InvalidInput("rentPrice must be at least 0")
	case p.DateAvailable != nil && p.DateAvailable.IsZero():
		return InvalidInput("dateAvailable cannot be empty")
	}
	return nil
}
