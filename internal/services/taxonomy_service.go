package services

import (
	"errors"

	"gorm.io/gorm"

	"souqly/internal/catalog"
	apperrors "souqly/internal/errors"
	"souqly/internal/models"
)

// taxonomyService handles the three-level category tree.
type taxonomyService struct {
	db *gorm.DB
}

// NewTaxonomyService creates a new TaxonomyServicer.
func NewTaxonomyService(db *gorm.DB) TaxonomyServicer {
	return &taxonomyService{db: db}
}

func orderedChildren(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, id ASC")
}

// List retrieves the full tree, every level ordered by display_order.
func (s *taxonomyService) List() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.
		Order("display_order ASC, id ASC").
		Preload("Subcategories", orderedChildren).
		Preload("Subcategories.SecondSubcategories", orderedChildren).
		Find(&categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategory retrieves one category with its subtree.
func (s *taxonomyService) GetCategory(id string) (*models.Category, error) {
	var category models.Category
	err := s.db.
		Preload("Subcategories", orderedChildren).
		Preload("Subcategories.SecondSubcategories", orderedChildren).
		First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateCategory inserts a category and its submitted subtree. The id is
// derived from the default label when omitted; collisions are rejected.
func (s *taxonomyService) CreateCategory(input CategoryInput) (*models.Category, error) {
	id := input.ID
	if id == "" {
		id = catalog.Slugify(input.Name.Default)
	}
	if id == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrCategoryExists
	}

	category := &models.Category{
		ID:           id,
		Name:         input.Name,
		Description:  input.Description,
		Icon:         input.Icon,
		Color:        input.Color,
		DisplayOrder: input.DisplayOrder,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			return err
		}
		return insertSubtree(tx, id, input.Subcategories)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetCategory(id)
}

// UpdateCategory updates the category fields and replaces its subtree:
// the persisted children set ends up exactly equal to the submitted set,
// leaving no orphaned leftovers.
func (s *taxonomyService) UpdateCategory(id string, input CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name_default":        input.Name.Default,
			"name_fr":             input.Name.Fr,
			"name_ar":             input.Name.Ar,
			"description_default": input.Description.Default,
			"description_fr":      input.Description.Fr,
			"description_ar":      input.Description.Ar,
			"icon":                input.Icon,
			"color":               input.Color,
			"display_order":       input.DisplayOrder,
		}
		if err := tx.Model(&category).Updates(updates).Error; err != nil {
			return err
		}
		if err := deleteSubtree(tx, id); err != nil {
			return err
		}
		return insertSubtree(tx, id, input.Subcategories)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetCategory(id)
}

// DeleteCategory removes the category and all descendants. It refuses
// while any service still references the category; re-homing or deleting
// those services first is the admin's responsibility.
func (s *taxonomyService) DeleteCategory(id string) error {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var refs int64
	if err := s.db.Model(&models.ServiceItem{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refs > 0 {
		return apperrors.ErrCategoryInUse
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteSubtree(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", id).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// insertSubtree creates the submitted subcategories and their children
// under categoryID, slugifying omitted ids.
func insertSubtree(tx *gorm.DB, categoryID string, subs []SubcategoryInput) error {
	for _, subInput := range subs {
		subID := subInput.ID
		if subID == "" {
			subID = catalog.Slugify(subInput.Name.Default)
		}
		sub := &models.Subcategory{
			ID:           subID,
			CategoryID:   categoryID,
			Name:         subInput.Name,
			Description:  subInput.Description,
			Icon:         subInput.Icon,
			Color:        subInput.Color,
			Fee:          subInput.Fee,
			DisplayOrder: subInput.DisplayOrder,
		}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}

		for _, leafInput := range subInput.SecondSubcategories {
			leafID := leafInput.ID
			if leafID == "" {
				leafID = catalog.Slugify(leafInput.Name.Default)
			}
			leaf := &models.SecondSubcategory{
				ID:            leafID,
				SubcategoryID: subID,
				Name:          leafInput.Name,
				Description:   leafInput.Description,
				Icon:          leafInput.Icon,
				Color:         leafInput.Color,
				Fee:           leafInput.Fee,
				DisplayOrder:  leafInput.DisplayOrder,
			}
			if err := tx.Create(leaf).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// deleteSubtree removes every subcategory and second subcategory under
// categoryID.
func deleteSubtree(tx *gorm.DB, categoryID string) error {
	sub := tx.Model(&models.Subcategory{}).Select("id").Where("category_id = ?", categoryID)
	if err := tx.Where("subcategory_id IN (?)", sub).Delete(&models.SecondSubcategory{}).Error; err != nil {
		return err
	}
	return tx.Where("category_id = ?", categoryID).Delete(&models.Subcategory{}).Error
}
