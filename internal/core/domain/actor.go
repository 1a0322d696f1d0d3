package domain

import "time"

// Actor is the authenticated identity behind one request. It is derived from a
// verified token and never persisted.
type Actor struct {
	ID           string `json:"id"`
	IsPrivileged bool   `json:"isPrivileged"`
}

// Authenticated reports whether the actor carries an identity at all.
func (a Actor) Authenticated() bool { return a.ID != "" }

// Session is the resolved identity of a request together with the token that
// produced it.
type Session struct {
	Actor     Actor
	TokenID   string
	ExpiresAt time.Time
}
