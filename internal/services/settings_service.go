package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "souqly/internal/errors"
	"souqly/internal/models"
)

// settingsService reads and writes the mutable global settings.
type settingsService struct {
	db            *gorm.DB
	defaultNumber string
}

// NewSettingsService creates a new SettingsServicer. defaultNumber is
// the contact-channel fallback used until an admin configures one.
func NewSettingsService(db *gorm.DB, defaultNumber string) SettingsServicer {
	return &settingsService{db: db, defaultNumber: defaultNumber}
}

// WhatsAppNumber returns the configured contact-channel number, or the
// default when unset. Read failures also fall back to the default: the
// hand-off flow must never be blocked by a settings lookup.
func (s *settingsService) WhatsAppNumber() string {
	var setting models.Setting
	err := s.db.First(&setting, "key = ?", models.SettingWhatsAppNumber).Error
	if err != nil || setting.Value == "" {
		return s.defaultNumber
	}
	return setting.Value
}

// SetWhatsAppNumber upserts the contact-channel number.
func (s *settingsService) SetWhatsAppNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "contact number is required")
	}

	setting := models.Setting{Key: models.SettingWhatsAppNumber, Value: number}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
