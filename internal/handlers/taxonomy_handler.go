package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "souqly/internal/errors"
	"souqly/internal/models"
	"souqly/internal/services"
)

// TaxonomyHandler serves the category tree: public reads for the
// storefront navigation, admin mutations for the back office.
type TaxonomyHandler struct {
	taxonomyService services.TaxonomyServicer
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomyService services.TaxonomyServicer) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// SecondSubcategoryRequest is a terminal taxonomy node in a category payload.
type SecondSubcategoryRequest struct {
	ID           string           `json:"id" binding:"omitempty,max=64"`
	Name         models.Localized `json:"name"`
	Description  models.Localized `json:"description"`
	Icon         string           `json:"icon" binding:"omitempty,icon_token"`
	Color        string           `json:"color" binding:"omitempty,hex_color"`
	Fee          decimal.Decimal  `json:"fee"`
	DisplayOrder int              `json:"display_order"`
}

// SubcategoryRequest is a level-1 taxonomy node with its children.
type SubcategoryRequest struct {
	ID                  string                     `json:"id" binding:"omitempty,max=64"`
	Name                models.Localized           `json:"name"`
	Description         models.Localized           `json:"description"`
	Icon                string                     `json:"icon" binding:"omitempty,icon_token"`
	Color               string                     `json:"color" binding:"omitempty,hex_color"`
	Fee                 decimal.Decimal            `json:"fee"`
	DisplayOrder        int                        `json:"display_order"`
	SecondSubcategories []SecondSubcategoryRequest `json:"second_subcategories" binding:"omitempty,dive"`
}

// CategoryRequest is the full category payload including the subtree.
type CategoryRequest struct {
	ID            string               `json:"id" binding:"omitempty,max=64"`
	Name          models.Localized     `json:"name"`
	Description   models.Localized     `json:"description"`
	Icon          string               `json:"icon" binding:"omitempty,icon_token"`
	Color         string               `json:"color" binding:"omitempty,hex_color"`
	DisplayOrder  int                  `json:"display_order"`
	Subcategories []SubcategoryRequest `json:"subcategories" binding:"omitempty,dive"`
}

func (r CategoryRequest) toInput() services.CategoryInput {
	input := services.CategoryInput{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Icon:         r.Icon,
		Color:        r.Color,
		DisplayOrder: r.DisplayOrder,
	}
	for _, sub := range r.Subcategories {
		subInput := services.SubcategoryInput{
			ID:           sub.ID,
			Name:         sub.Name,
			Description:  sub.Description,
			Icon:         sub.Icon,
			Color:        sub.Color,
			Fee:          sub.Fee,
			DisplayOrder: sub.DisplayOrder,
		}
		for _, leaf := range sub.SecondSubcategories {
			subInput.SecondSubcategories = append(subInput.SecondSubcategories, services.SecondSubcategoryInput{
				ID:           leaf.ID,
				Name:         leaf.Name,
				Description:  leaf.Description,
				Icon:         leaf.Icon,
				Color:        leaf.Color,
				Fee:          leaf.Fee,
				DisplayOrder: leaf.DisplayOrder,
			})
		}
		input.Subcategories = append(input.Subcategories, subInput)
	}
	return input
}

// ListCategories returns the full category tree
// @Summary     List categories
// @Description Get the three-level category tree ordered for display
// @Tags        taxonomy
// @Produce     json
// @Success     200 {array} models.Category "Category tree"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.taxonomyService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory returns one category with its subtree
// @Summary     Get category
// @Description Get a category and its full subtree by slug id
// @Tags        taxonomy
// @Produce     json
// @Param       id path string true "Category id"
// @Success     200 {object} models.Category "Category"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	category, err := h.taxonomyService.GetCategory(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// CreateCategory creates a category with its subtree
// @Summary     Create category
// @Description Create a category; the slug id is derived from the default name when omitted
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategoryRequest true "Category payload"
// @Success     201 {object} models.Category "Created category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Slug already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/categories [post]
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.taxonomyService.CreateCategory(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory updates a category and replaces its subtree
// @Summary     Update category
// @Description Update category fields and replace the whole subtree with the submitted one
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category id"
// @Param       request body CategoryRequest true "Category payload"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/categories/{id} [put]
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.taxonomyService.UpdateCategory(c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory deletes a category and its descendants
// @Summary     Delete category
// @Description Delete a category and all descendants; refused while services still reference it
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category id"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category still referenced"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/categories/{id} [delete]
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	if err := h.taxonomyService.DeleteCategory(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
