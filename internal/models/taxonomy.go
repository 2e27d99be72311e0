package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a top-level taxonomy node. Its primary key is a slug
// derived from the default label at creation time and immutable after.
type Category struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Name         Localized `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description  Localized `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Icon         string    `gorm:"size:32" json:"icon"`
	Color        string    `gorm:"size:16" json:"color"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

// Subcategory is a level-1 taxonomy node. Fee is a percentage (>= 0)
// applied on top of the effective price for orders placed under this
// node, unless a deeper node overrides it.
type Subcategory struct {
	ID           string          `gorm:"primaryKey;size:64" json:"id"`
	CategoryID   string          `gorm:"size:64;not null;index" json:"category_id"`
	Name         Localized       `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description  Localized       `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Icon         string          `gorm:"size:32" json:"icon"`
	Color        string          `gorm:"size:16" json:"color"`
	Fee          decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"fee"`
	DisplayOrder int             `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	SecondSubcategories []SecondSubcategory `gorm:"foreignKey:SubcategoryID" json:"second_subcategories,omitempty"`
}

// SecondSubcategory is the terminal taxonomy level. No further children.
type SecondSubcategory struct {
	ID            string          `gorm:"primaryKey;size:64" json:"id"`
	SubcategoryID string          `gorm:"size:64;not null;index" json:"subcategory_id"`
	Name          Localized       `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Description   Localized       `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Icon          string          `gorm:"size:32" json:"icon"`
	Color         string          `gorm:"size:16" json:"color"`
	Fee           decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"fee"`
	DisplayOrder  int             `gorm:"not null;default:0" json:"display_order"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
