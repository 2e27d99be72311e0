package models

import (
	"time"

	"souqly/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for UUID-keyed tables. Taxonomy nodes do
// not embed it: their primary keys are admin-visible slugs.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// Localized holds the default, French, and Arabic variants of a display string.
type Localized struct {
	Default string `json:"default"`
	Fr      string `json:"fr,omitempty"`
	Ar      string `json:"ar,omitempty"`
}

// Resolve returns the variant for the given language tag, falling back
// to the default variant when the translation is empty.
func (l Localized) Resolve(lang string) string {
	switch lang {
	case "fr":
		if l.Fr != "" {
			return l.Fr
		}
	case "ar":
		if l.Ar != "" {
			return l.Ar
		}
	}
	return l.Default
}
