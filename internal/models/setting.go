package models

import "time"

// Setting keys.
const (
	SettingWhatsAppNumber = "whatsapp_number"
)

// Setting is a single mutable global configuration value, keyed by name.
// Used for the contact-channel identifier read by the order hand-off and
// contact-support flows.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
