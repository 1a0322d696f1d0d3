// Package authz holds every access rule of the API as a pure function over the
// actor and the state of the target entity. Nothing here performs I/O; the
// services load entities and ask these functions for a Decision.
package authz

import "github.com/flatfinder/flatfinder-api/internal/core/domain"

// Denial reasons.
const (
	ReasonAuthRequired       = "authentication required"
	ReasonOwnerOrPrivileged  = "owner or privileged required"
	ReasonSenderOrPrivileged = "sender or privileged required"
	ReasonSelfOrPrivileged   = "self or privileged required"
	ReasonSelfOnly           = "only the account owner may do this"
	ReasonPrivilegedRequired = "privileged required"
	ReasonEmailRegistered    = "email already registered"
)

// Rule names, used to label decisions in metrics and logs.
const (
	RuleReadListing         = "listing.read"
	RuleCreateListing       = "listing.create"
	RuleUpdateListing       = "listing.update"
	RuleDeleteListing       = "listing.delete"
	RuleListListingMessages = "message.list_for_listing"
	RuleListSenderMessages  = "message.list_for_sender"
	RuleCreateMessage       = "message.create"
	RuleListUsers           = "user.list"
	RuleReadUser            = "user.read"
	RuleUpdateUser          = "user.update"
	RuleDeleteUser          = "user.delete"
	RuleManageFavorites     = "user.favorites"
	RuleRegister            = "user.register"
)

// Decision is the outcome of one rule.
type Decision struct {
	Allowed bool
	Reason  string
}

var allow = Decision{Allowed: true}

func deny(reason string) Decision { return Decision{Reason: reason} }

// Err converts a denial into a Forbidden error carrying the reason; an allowed
// decision yields nil. Missing identity maps to Unauthenticated instead.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonAuthRequired {
		return domain.ErrAuthRequired
	}
	return domain.Forbidden(d.Reason)
}

// authenticated is the floor of every rule.
func authenticated(a domain.Actor) Decision {
	if !a.Authenticated() {
		return deny(ReasonAuthRequired)
	}
	return allow
}

// ownerOrPrivileged short-circuits on privilege before comparing ids.
func ownerOrPrivileged(a domain.Actor, ownerID, reason string) Decision {
	if d := authenticated(a); !d.Allowed {
		return d
	}
	if a.IsPrivileged {
		return allow
	}
	if a.ID == ownerID {
		return allow
	}
	return deny(reason)
}

// --- Listings ---

func CanReadListing(a domain.Actor) Decision { return authenticated(a) }

func CanCreateListing(a domain.Actor) Decision { return authenticated(a) }

// ListingOwner is the owner stamped on a listing the actor creates. Any owner
// supplied by the caller is ignored.
func ListingOwner(a domain.Actor) string { return a.ID }

func CanUpdateListing(a domain.Actor, l *domain.Listing) Decision {
	return ownerOrPrivileged(a, l.OwnerID, ReasonOwnerOrPrivileged)
}

func CanDeleteListing(a domain.Actor, l *domain.Listing) Decision {
	return ownerOrPrivileged(a, l.OwnerID, ReasonOwnerOrPrivileged)
}

// --- Messages ---

func CanListListingMessages(a domain.Actor, l *domain.Listing) Decision {
	return ownerOrPrivileged(a, l.OwnerID, ReasonOwnerOrPrivileged)
}

func CanListSenderMessages(a domain.Actor, senderID string) Decision {
	return ownerOrPrivileged(a, senderID, ReasonSenderOrPrivileged)
}

func CanCreateMessage(a domain.Actor) Decision { return authenticated(a) }

// MessageSender is the sender stamped on a message the actor creates.
func MessageSender(a domain.Actor) string { return a.ID }

// --- Users ---

func CanListUsers(a domain.Actor) Decision {
	if d := authenticated(a); !d.Allowed {
		return d
	}
	if !a.IsPrivileged {
		return deny(ReasonPrivilegedRequired)
	}
	return allow
}

// CanReadUser allows any authenticated actor to read any profile.
func CanReadUser(a domain.Actor, _ string) Decision { return authenticated(a) }

// ResolveUserTarget picks the account a self-service operation applies to: the
// actor's own, unless a privileged actor names another one explicitly. An
// explicit target from a non-privileged actor is ignored, not rejected.
func ResolveUserTarget(a domain.Actor, explicit string) string {
	if a.IsPrivileged && explicit != "" {
		return explicit
	}
	return a.ID
}

func CanUpdateUser(a domain.Actor, targetID string) Decision {
	return ownerOrPrivileged(a, targetID, ReasonSelfOrPrivileged)
}

func CanDeleteUser(a domain.Actor, targetID string) Decision {
	return ownerOrPrivileged(a, targetID, ReasonSelfOrPrivileged)
}

// CanManageFavorites restricts favorites to the account's own holder; privilege
// does not extend to other users' favorites.
func CanManageFavorites(a domain.Actor, targetID string) Decision {
	if d := authenticated(a); !d.Allowed {
		return d
	}
	if a.ID != targetID {
		return deny(ReasonSelfOnly)
	}
	return allow
}

// CanRegister rejects an email that is already taken. The service reports
// this denial as a conflict.
func CanRegister(emailTaken bool) Decision {
	if emailTaken {
		return deny(ReasonEmailRegistered)
	}
	return allow
}
