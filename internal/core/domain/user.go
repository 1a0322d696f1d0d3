package domain

import (
	"strings"
	"time"
)

// User models an account. SecretHash never leaves the service boundary.
type User struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	SecretHash         string     `json:"-"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	BirthDate          *time.Time `json:"birthDate,omitempty"`
	IsPrivileged       bool       `json:"isPrivileged"`
	FavoriteListingIDs []string   `json:"favoriteListingIds"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Actor projects the user onto the identity carried by its tokens.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, IsPrivileged: u.IsPrivileged}
}

// NormalizeEmail trims and lower-cases an address; uniqueness is enforced on
// the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserPatch carries a profile update. Nil fields are left untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	BirthDate *time.Time
}

// Changes returns the submitted fields keyed by their stored names.
func (p UserPatch) Changes() map[string]any {
	out := make(map[string]any, 3)
	if p.FirstName != nil {
		out["firstName"] = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		out["lastName"] = strings.TrimSpace(*p.LastName)
	}
	if p.BirthDate != nil {
		out["birthDate"] = p.BirthDate.UTC()
	}
	return out
}

// Validate rejects blank names; both are required on the stored document.
func (p UserPatch) Validate() error {
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return InvalidInput("firstName cannot be empty")
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return InvalidInput("lastName cannot be empty")
	}
	return nil
}
