package domain

// CleanupKind names the cascade run after an entity is deleted.
type CleanupKind string

const (
	CleanupUserDeleted    CleanupKind = "user_deleted"
	CleanupListingDeleted CleanupKind = "listing_deleted"
)

// CleanupJob asks the background workers to remove data that referenced a
// deleted user or listing.
type CleanupJob struct {
	Kind      CleanupKind
	SubjectID string
}
