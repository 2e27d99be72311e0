package services

import (
	"errors"

	"gorm.io/gorm"

	"souqly/internal/catalog"
	apperrors "souqly/internal/errors"
	"souqly/internal/models"
)

// catalogService handles service catalog browsing and admin CRUD.
type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new CatalogServicer.
func NewCatalogService(db *gorm.DB) CatalogServicer {
	return &catalogService{db: db}
}

// ListServices loads the full catalog and runs it through the pure
// filter engine. The engine owns all predicate and ordering semantics;
// keeping the filtering out of SQL keeps it deterministic and testable
// and matches the catalog's session-wide load-once access pattern.
func (s *catalogService) ListServices(q catalog.Query) ([]models.ServiceItem, error) {
	var items []models.ServiceItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return catalog.Filter(items, q), nil
}

// GetService retrieves a service by ID.
func (s *catalogService) GetService(id string) (*models.ServiceItem, error) {
	var item models.ServiceItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// CreateService inserts a new catalog entry after validating its
// taxonomy references.
func (s *catalogService) CreateService(input ServiceInput) (*models.ServiceItem, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "service name is required")
	}
	if input.Price.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price must not be negative")
	}
	if err := s.validateTaxonomyRefs(input); err != nil {
		return nil, err
	}

	item := &models.ServiceItem{
		Name:                input.Name,
		Description:         input.Description,
		CategoryID:          input.CategoryID,
		SubcategoryID:       input.SubcategoryID,
		SecondSubcategoryID: input.SecondSubcategoryID,
		Price:               input.Price,
		PromoPrice:          input.PromoPrice,
		BadgeLabel:          input.BadgeLabel,
		Currency:            input.Currency,
		Conditions:          input.Conditions,
		RequiredInfo:        input.RequiredInfo,
		Active:              input.Active,
		Popularity:          input.Popularity,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// UpdateService replaces the mutable fields of a service. The order
// snapshots taken from earlier prices are unaffected.
func (s *catalogService) UpdateService(id string, input ServiceInput) (*models.ServiceItem, error) {
	item, err := s.GetService(id)
	if err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price must not be negative")
	}
	if err := s.validateTaxonomyRefs(input); err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.CategoryID = input.CategoryID
	item.SubcategoryID = input.SubcategoryID
	item.SecondSubcategoryID = input.SecondSubcategoryID
	item.Price = input.Price
	item.PromoPrice = input.PromoPrice
	item.BadgeLabel = input.BadgeLabel
	item.Currency = input.Currency
	item.Conditions = input.Conditions
	item.RequiredInfo = input.RequiredInfo
	item.Active = input.Active
	item.Popularity = input.Popularity

	if err := s.db.Save(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// SetServiceActive toggles storefront visibility.
func (s *catalogService) SetServiceActive(id string, active bool) (*models.ServiceItem, error) {
	item, err := s.GetService(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(item).Update("active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	item.Active = active
	return item, nil
}

// DeleteService removes a service. Reviews and favorites are
// cascade-deleted; orders keep their snapshot but lose the live
// reference, preserving order history.
func (s *catalogService) DeleteService(id string) error {
	item, err := s.GetService(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("service_id = ?", id).
			Update("service_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateTaxonomyRefs checks the invariant chain: category exists, a
// subcategory belongs to that category, a second subcategory belongs to
// that subcategory.
func (s *catalogService) validateTaxonomyRefs(input ServiceInput) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", input.CategoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}

	if input.SecondSubcategoryID != nil && input.SubcategoryID == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "second subcategory requires a subcategory")
	}

	if input.SubcategoryID != nil {
		if err := s.db.Model(&models.Subcategory{}).
			Where("id = ? AND category_id = ?", *input.SubcategoryID, input.CategoryID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrSubcategoryNotFound
		}
	}

	if input.SecondSubcategoryID != nil {
		if err := s.db.Model(&models.SecondSubcategory{}).
			Where("id = ? AND subcategory_id = ?", *input.SecondSubcategoryID, *input.SubcategoryID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrSubcategoryNotFound
		}
	}

	return nil
}
