package models

import "github.com/shopspring/decimal"

// OrderStatus tracks an order through its lifecycle. pending_whatsapp is
// the initial state set at creation; admins may move an order to any
// status, customers may only cancel while still pending.
type OrderStatus string

const (
	OrderStatusPendingWhatsApp OrderStatus = "pending_whatsapp"
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusProcessing      OrderStatus = "processing"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPendingWhatsApp, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a customer's request to purchase a service. ServiceName,
// Category, Subcategory, Price, and Currency are snapshotted at creation
// and never change afterwards, even if the referenced service is edited
// or deleted, to preserve historical billing accuracy. ServiceID is
// nulled when the service is deleted; UserID is nil for guest checkout.
type Order struct {
	Base
	UserID        *string         `gorm:"type:uuid;index" json:"user_id,omitempty"`
	ServiceID     *string         `gorm:"type:uuid;index" json:"service_id,omitempty"`
	ServiceName   string          `gorm:"not null" json:"service_name"`
	Category      string          `gorm:"size:128" json:"category"`
	Subcategory   string          `gorm:"size:128" json:"subcategory,omitempty"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Currency      string          `gorm:"size:3;not null" json:"currency"`
	PromoApplied  bool            `gorm:"not null;default:false" json:"promo_applied"`
	CustomerInfo  string          `gorm:"not null" json:"customer_info"`
	CustomerEmail string          `gorm:"not null;index" json:"customer_email"`
	CustomerPhone string          `gorm:"not null" json:"customer_phone"`
	Status        OrderStatus     `gorm:"size:32;not null;default:pending_whatsapp" json:"status"`
	InternalNotes string          `json:"internal_notes,omitempty"`
}
