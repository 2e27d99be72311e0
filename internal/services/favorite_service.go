package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "souqly/internal/errors"
	"souqly/internal/models"
)

// favoriteService handles per-owner favorite sets.
type favoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new FavoriteServicer.
func NewFavoriteService(db *gorm.DB) FavoriteServicer {
	return &favoriteService{db: db}
}

// Toggle flips set membership: adds when absent, removes when present.
// Returns the new membership state, so toggling twice always restores
// the original state.
func (s *favoriteService) Toggle(ownerKey, serviceID string) (bool, error) {
	if ownerKey == "" {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "owner key is required")
	}

	var count int64
	if err := s.db.Model(&models.ServiceItem{}).Where("id = ?", serviceID).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return false, apperrors.ErrServiceNotFound
	}

	var fav models.Favorite
	err := s.db.Where("owner_key = ? AND service_id = ?", ownerKey, serviceID).First(&fav).Error
	switch {
	case err == nil:
		if err := s.db.Delete(&fav).Error; err != nil {
			return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		fav = models.Favorite{OwnerKey: ownerKey, ServiceID: serviceID}
		if err := s.db.Create(&fav).Error; err != nil {
			return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return true, nil
	default:
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// List returns the favorited services themselves, for the favorites view.
func (s *favoriteService) List(ownerKey string) ([]models.ServiceItem, error) {
	var items []models.ServiceItem
	sub := s.db.Model(&models.Favorite{}).Select("service_id").Where("owner_key = ?", ownerKey)
	if err := s.db.Where("id IN (?)", sub).Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// Set returns the owner's membership set for the filter engine.
func (s *favoriteService) Set(ownerKey string) (map[string]struct{}, error) {
	var ids []string
	if err := s.db.Model(&models.Favorite{}).Where("owner_key = ?", ownerKey).
		Pluck("service_id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
