package models

// Favorite marks a service as favorited by an owner. OwnerKey is either
// a user ID or a "guest:"-prefixed session identifier, so guests keep
// their favorites without an account. Membership only: no ordering or
// toggle history is retained.
type Favorite struct {
	Base
	OwnerKey  string `gorm:"size:64;not null;uniqueIndex:idx_favorites_owner_service" json:"owner_key"`
	ServiceID string `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_owner_service" json:"service_id"`
}
