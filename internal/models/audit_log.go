package models

// AuditLog records admin mutations, primarily order status updates, so
// the back office can show what changed and by whom.
type AuditLog struct {
	Base
	ActorID      string `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action       string `gorm:"size:64;not null" json:"action"`
	ResourceType string `gorm:"size:32;not null" json:"resource_type"`
	ResourceID   string `gorm:"size:64" json:"resource_id"`
	Changes      string `json:"changes,omitempty"`
}
