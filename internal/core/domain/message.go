package domain

import "time"

// Message is an enquiry sent about a listing. Messages are immutable.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ListingID string    `json:"listingId"`
	SenderID  string    `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
}
