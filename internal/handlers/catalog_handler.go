package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"souqly/internal/catalog"
	apperrors "souqly/internal/errors"
	"souqly/internal/models"
	"souqly/internal/services"
)

// CatalogHandler serves the storefront listing and the admin service CRUD.
type CatalogHandler struct {
	catalogService  services.CatalogServicer
	reviewService   services.ReviewServicer
	favoriteService services.FavoriteServicer
	taxonomyService services.TaxonomyServicer
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	catalogService services.CatalogServicer,
	reviewService services.ReviewServicer,
	favoriteService services.FavoriteServicer,
	taxonomyService services.TaxonomyServicer,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  catalogService,
		reviewService:   reviewService,
		favoriteService: favoriteService,
		taxonomyService: taxonomyService,
	}
}

// ListServicesQuery holds the storefront filter parameters.
type ListServicesQuery struct {
	Category      string   `form:"category"`
	Path          []string `form:"path" binding:"omitempty,max=2"`
	Search        string   `form:"search" binding:"omitempty,max=128"`
	Global        bool     `form:"global"`
	MinPrice      string   `form:"min_price"`
	MaxPrice      string   `form:"max_price"`
	FavoritesOnly bool     `form:"favorites_only"`
	Sort          string   `form:"sort" binding:"omitempty,sort_key"`
}

// ServiceRequest carries admin-supplied service fields.
type ServiceRequest struct {
	Name                string           `json:"name" binding:"required,max=255"`
	Description         string           `json:"description"`
	CategoryID          string           `json:"category_id" binding:"required,max=64"`
	SubcategoryID       *string          `json:"subcategory_id"`
	SecondSubcategoryID *string          `json:"second_subcategory_id"`
	Price               decimal.Decimal  `json:"price"`
	PromoPrice          *decimal.Decimal `json:"promo_price"`
	BadgeLabel          string           `json:"badge_label" binding:"max=64"`
	Currency            string           `json:"currency" binding:"required,iso4217"`
	Conditions          string           `json:"conditions"`
	RequiredInfo        string           `json:"required_info"`
	Active              bool             `json:"active"`
	Popularity          int              `json:"popularity" binding:"min=0"`
}

func (r ServiceRequest) toInput() services.ServiceInput {
	return services.ServiceInput{
		Name:                r.Name,
		Description:         r.Description,
		CategoryID:          r.CategoryID,
		SubcategoryID:       r.SubcategoryID,
		SecondSubcategoryID: r.SecondSubcategoryID,
		Price:               r.Price,
		PromoPrice:          r.PromoPrice,
		BadgeLabel:          r.BadgeLabel,
		Currency:            r.Currency,
		Conditions:          r.Conditions,
		RequiredInfo:        r.RequiredInfo,
		Active:              r.Active,
		Popularity:          r.Popularity,
	}
}

// ServiceView is a catalog entry decorated for the storefront: the
// effective price after promo and the rating badge, when one exists.
type ServiceView struct {
	models.ServiceItem
	EffectivePrice decimal.Decimal         `json:"effective_price"`
	Promo          bool                    `json:"promo"`
	Rating         *models.RatingAggregate `json:"rating,omitempty"`
	Favorite       bool                    `json:"favorite"`
}

func (h *CatalogHandler) buildQuery(c *gin.Context, adminMode bool) (catalog.Query, error) {
	var req ListServicesQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		return catalog.Query{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	q := catalog.Query{
		CategoryID:    req.Category,
		Path:          req.Path,
		Search:        req.Search,
		GlobalSearch:  req.Global,
		FavoritesOnly: req.FavoritesOnly,
		AdminMode:     adminMode,
		Sort:          catalog.SortKey(req.Sort),
	}
	if q.CategoryID == "" {
		q.CategoryID = catalog.NavHome
	}

	if req.MinPrice != "" {
		min, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			return catalog.Query{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid min_price")
		}
		q.MinPrice = &min
	}
	if req.MaxPrice != "" {
		max, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			return catalog.Query{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid max_price")
		}
		q.MaxPrice = &max
	}

	if req.FavoritesOnly {
		favorites, err := h.favoriteService.Set(ownerKey(c))
		if err != nil {
			return catalog.Query{}, err
		}
		q.Favorites = favorites
	}

	return q, nil
}

// decorate builds the storefront views for a filtered result set.
func (h *CatalogHandler) decorate(c *gin.Context, items []models.ServiceItem) ([]ServiceView, error) {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	ratings, err := h.reviewService.AggregateMany(ids)
	if err != nil {
		return nil, err
	}

	var favorites map[string]struct{}
	if key := ownerKey(c); key != "" {
		if favorites, err = h.favoriteService.Set(key); err != nil {
			return nil, err
		}
	}

	views := make([]ServiceView, len(items))
	for i, item := range items {
		price, promo := catalog.EffectivePrice(item.Price, item.PromoPrice)
		view := ServiceView{
			ServiceItem:    item,
			EffectivePrice: price,
			Promo:          promo,
		}
		if agg, ok := ratings[item.ID]; ok {
			view.Rating = &agg
		}
		if _, ok := favorites[item.ID]; ok {
			view.Favorite = true
		}
		views[i] = view
	}
	return views, nil
}

// ListServices returns the filtered storefront catalog
// @Summary     List services
// @Description Get services filtered by category, subcategory path, search, price bounds, and favorites
// @Tags        catalog
// @Produce     json
// @Param       category query string false "Category id or home/settings"
// @Param       path query []string false "Subcategory drill-down path"
// @Param       search query string false "Case-insensitive text search"
// @Param       global query bool false "Widen search across all categories"
// @Param       min_price query string false "Inclusive lower price bound"
// @Param       max_price query string false "Inclusive upper price bound"
// @Param       favorites_only query bool false "Restrict to the caller's favorites"
// @Param       sort query string false "newest, popularity, price_asc, price_desc, name_asc, name_desc"
// @Success     200 {array} ServiceView "Filtered services"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	q, err := h.buildQuery(c, false)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.catalogService.ListServices(q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	views, err := h.decorate(c, items)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Distinguish "pick a subcategory" from a genuinely empty result so
	// the storefront can render the drill-down prompt.
	subcategoryPending := false
	if len(views) == 0 && q.CategoryID != catalog.NavHome && q.CategoryID != catalog.NavSettings {
		if category, err := h.taxonomyService.GetCategory(q.CategoryID); err == nil {
			subcategoryPending = q.SubcategoryPending(len(category.Subcategories) > 0)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"services":            views,
		"subcategory_pending": subcategoryPending,
	})
}

// GetService returns one service with its reviews
// @Summary     Get service
// @Description Get a service with its reviews and rating aggregate
// @Tags        catalog
// @Produce     json
// @Param       id path string true "Service id"
// @Success     200 {object} ServiceView "Service detail"
// @Failure     404 {object} ErrorResponse "Service not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	item, err := h.catalogService.GetService(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	reviews, err := h.reviewService.ListForService(item.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	views, err := h.decorate(c, []models.ServiceItem{*item})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service": views[0],
		"reviews": reviews,
	})
}

// AdminListServices returns the unfiltered-visibility catalog for the back office
// @Summary     List services (admin)
// @Description Get services including inactive ones, with the same filter parameters as the storefront
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} ServiceView "Services"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/services [get]
func (h *CatalogHandler) AdminListServices(c *gin.Context) {
	q, err := h.buildQuery(c, true)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.catalogService.ListServices(q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	views, err := h.decorate(c, items)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": views})
}

// CreateService creates a catalog entry
// @Summary     Create service
// @Description Create a service under an existing taxonomy node
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ServiceRequest true "Service payload"
// @Success     201 {object} models.ServiceItem "Created service"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Taxonomy node not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.catalogService.CreateService(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": item})
}

// UpdateService updates a catalog entry
// @Summary     Update service
// @Description Replace the mutable fields of a service; existing order snapshots are unaffected
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Service id"
// @Param       request body ServiceRequest true "Service payload"
// @Success     200 {object} models.ServiceItem "Updated service"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Service not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/services/{id} [put]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.catalogService.UpdateService(c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": item})
}

// SetActiveRequest toggles storefront visibility.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetServiceActive toggles a service's storefront visibility
// @Summary     Toggle service visibility
// @Description Activate or deactivate a service without deleting it
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Service id"
// @Param       request body SetActiveRequest true "Visibility flag"
// @Success     200 {object} models.ServiceItem "Updated service"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Service not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/services/{id}/active [patch]
func (h *CatalogHandler) SetServiceActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.catalogService.SetServiceActive(c.Param("id"), *req.Active)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": item})
}

// DeleteService deletes a catalog entry
// @Summary     Delete service
// @Description Delete a service; its reviews and favorites go with it, order snapshots survive
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Service id"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Service not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.catalogService.DeleteService(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// ListIcons returns the closed icon token set
// @Summary     List icon tokens
// @Description Get the icon tokens accepted on taxonomy nodes
// @Tags        taxonomy
// @Produce     json
// @Success     200 {array} string "Icon tokens"
// @Router      /icons [get]
func (h *CatalogHandler) ListIcons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"icons": catalog.Icons()})
}
