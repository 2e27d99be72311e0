package models

import "github.com/shopspring/decimal"

// ServiceItem is a catalog entry: a digital product or service that can
// be ordered. A service with SecondSubcategoryID set belongs exclusively
// to that leaf and never shows up in its parent subcategory's direct
// listing.
type ServiceItem struct {
	Base
	Name                string           `gorm:"not null" json:"name"`
	Description         string           `json:"description"`
	CategoryID          string           `gorm:"size:64;not null;index" json:"category_id"`
	SubcategoryID       *string          `gorm:"size:64;index" json:"subcategory_id,omitempty"`
	SecondSubcategoryID *string          `gorm:"size:64;index" json:"second_subcategory_id,omitempty"`
	Price               decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"price"`
	PromoPrice          *decimal.Decimal `gorm:"type:numeric(12,2)" json:"promo_price,omitempty"`
	BadgeLabel          string           `gorm:"size:64" json:"badge_label,omitempty"`
	Currency            string           `gorm:"size:3;not null;default:USD" json:"currency"`
	Conditions          string           `json:"conditions,omitempty"`
	RequiredInfo        string           `json:"required_info,omitempty"`
	Active              bool             `gorm:"not null;default:true" json:"active"`
	Popularity          int              `gorm:"not null;default:0" json:"popularity"`

	Reviews []Review `gorm:"foreignKey:ServiceID" json:"reviews,omitempty"`
}
