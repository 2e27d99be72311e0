package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"souqly/internal/catalog"
	"souqly/internal/models"
	"souqly/internal/services"
)

// --- mock catalog, review, favorite, and taxonomy services ---

type mockCatalogService struct {
	listServicesFn     func(q catalog.Query) ([]models.ServiceItem, error)
	getServiceFn       func(id string) (*models.ServiceItem, error)
	createServiceFn    func(input services.ServiceInput) (*models.ServiceItem, error)
	updateServiceFn    func(id string, input services.ServiceInput) (*models.ServiceItem, error)
	setServiceActiveFn func(id string, active bool) (*models.ServiceItem, error)
	deleteServiceFn    func(id string) error
}

func (m *mockCatalogService) ListServices(q catalog.Query) ([]models.ServiceItem, error) {
	if m.listServicesFn != nil {
		return m.listServicesFn(q)
	}
	return nil, nil
}

func (m *mockCatalogService) GetService(id string) (*models.ServiceItem, error) {
	if m.getServiceFn != nil {
		return m.getServiceFn(id)
	}
	return &models.ServiceItem{}, nil
}

func (m *mockCatalogService) CreateService(input services.ServiceInput) (*models.ServiceItem, error) {
	if m.createServiceFn != nil {
		return m.createServiceFn(input)
	}
	return &models.ServiceItem{}, nil
}

func (m *mockCatalogService) UpdateService(id string, input services.ServiceInput) (*models.ServiceItem, error) {
	if m.updateServiceFn != nil {
		return m.updateServiceFn(id, input)
	}
	return &models.ServiceItem{}, nil
}

func (m *mockCatalogService) SetServiceActive(id string, active bool) (*models.ServiceItem, error) {
	if m.setServiceActiveFn != nil {
		return m.setServiceActiveFn(id, active)
	}
	return &models.ServiceItem{}, nil
}

func (m *mockCatalogService) DeleteService(id string) error {
	if m.deleteServiceFn != nil {
		return m.deleteServiceFn(id)
	}
	return nil
}

type mockReviewService struct {
	createFn         func(userID, serviceID string, rating int, comment string) (*models.Review, error)
	listForServiceFn func(serviceID string) ([]models.Review, error)
	aggregateFn      func(serviceID string) (models.RatingAggregate, error)
	aggregateManyFn  func(serviceIDs []string) (map[string]models.RatingAggregate, error)
	deleteFn         func(reviewID, requesterID string, requesterRole models.Role) error
}

func (m *mockReviewService) Create(userID, serviceID string, rating int, comment string) (*models.Review, error) {
	if m.createFn != nil {
		return m.createFn(userID, serviceID, rating, comment)
	}
	return &models.Review{}, nil
}

func (m *mockReviewService) ListForService(serviceID string) ([]models.Review, error) {
	if m.listForServiceFn != nil {
		return m.listForServiceFn(serviceID)
	}
	return nil, nil
}

func (m *mockReviewService) Aggregate(serviceID string) (models.RatingAggregate, error) {
	if m.aggregateFn != nil {
		return m.aggregateFn(serviceID)
	}
	return models.RatingAggregate{}, nil
}

func (m *mockReviewService) AggregateMany(serviceIDs []string) (map[string]models.RatingAggregate, error) {
	if m.aggregateManyFn != nil {
		return m.aggregateManyFn(serviceIDs)
	}
	return map[string]models.RatingAggregate{}, nil
}

func (m *mockReviewService) Delete(reviewID, requesterID string, requesterRole models.Role) error {
	if m.deleteFn != nil {
		return m.deleteFn(reviewID, requesterID, requesterRole)
	}
	return nil
}

type mockFavoriteService struct {
	toggleFn func(ownerKey, serviceID string) (bool, error)
	listFn   func(ownerKey string) ([]models.ServiceItem, error)
	setFn    func(ownerKey string) (map[string]struct{}, error)
}

func (m *mockFavoriteService) Toggle(ownerKey, serviceID string) (bool, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ownerKey, serviceID)
	}
	return true, nil
}

func (m *mockFavoriteService) List(ownerKey string) ([]models.ServiceItem, error) {
	if m.listFn != nil {
		return m.listFn(ownerKey)
	}
	return nil, nil
}

func (m *mockFavoriteService) Set(ownerKey string) (map[string]struct{}, error) {
	if m.setFn != nil {
		return m.setFn(ownerKey)
	}
	return map[string]struct{}{}, nil
}

type mockTaxonomyService struct {
	listFn           func() ([]models.Category, error)
	getCategoryFn    func(id string) (*models.Category, error)
	createCategoryFn func(input services.CategoryInput) (*models.Category, error)
	updateCategoryFn func(id string, input services.CategoryInput) (*models.Category, error)
	deleteCategoryFn func(id string) error
}

func (m *mockTaxonomyService) List() ([]models.Category, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return nil, nil
}

func (m *mockTaxonomyService) GetCategory(id string) (*models.Category, error) {
	if m.getCategoryFn != nil {
		return m.getCategoryFn(id)
	}
	return &models.Category{ID: id}, nil
}

func (m *mockTaxonomyService) CreateCategory(input services.CategoryInput) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(input)
	}
	return &models.Category{}, nil
}

func (m *mockTaxonomyService) UpdateCategory(id string, input services.CategoryInput) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(id, input)
	}
	return &models.Category{}, nil
}

func (m *mockTaxonomyService) DeleteCategory(id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(id)
	}
	return nil
}

func setupCatalogRouter(handler *CatalogHandler) *gin.Engine {
	r := gin.New()
	r.GET("/services", handler.ListServices)
	r.GET("/services/:id", handler.GetService)

	admin := r.Group("/admin", injectUser("admin-1", "admin"))
	admin.GET("/services", handler.AdminListServices)
	admin.POST("/services", handler.CreateService)
	admin.PUT("/services/:id", handler.UpdateService)
	admin.PATCH("/services/:id/active", handler.SetServiceActive)
	admin.DELETE("/services/:id", handler.DeleteService)
	return r
}

func newCatalogHandler(catalogSvc *mockCatalogService, reviewSvc *mockReviewService, favoriteSvc *mockFavoriteService, taxonomySvc *mockTaxonomyService) *CatalogHandler {
	if catalogSvc == nil {
		catalogSvc = &mockCatalogService{}
	}
	if reviewSvc == nil {
		reviewSvc = &mockReviewService{}
	}
	if favoriteSvc == nil {
		favoriteSvc = &mockFavoriteService{}
	}
	if taxonomySvc == nil {
		taxonomySvc = &mockTaxonomyService{}
	}
	return NewCatalogHandler(catalogSvc, reviewSvc, favoriteSvc, taxonomySvc)
}

func TestCatalogHandler_ListServices(t *testing.T) {
	t.Run("builds the query from parameters", func(t *testing.T) {
		var gotQuery catalog.Query
		catalogSvc := &mockCatalogService{
			listServicesFn: func(q catalog.Query) ([]models.ServiceItem, error) {
				gotQuery = q
				return nil, nil
			},
		}
		r := setupCatalogRouter(newCatalogHandler(catalogSvc, nil, nil, nil))

		rec := doRequest(r, "GET",
			"/services?category=GAMING&path=STEAM&search=gift&min_price=10&max_price=50&sort=price_asc", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotQuery.CategoryID != "GAMING" {
			t.Errorf("expected category GAMING, got %s", gotQuery.CategoryID)
		}
		if len(gotQuery.Path) != 1 || gotQuery.Path[0] != "STEAM" {
			t.Errorf("expected path [STEAM], got %v", gotQuery.Path)
		}
		if gotQuery.Search != "gift" {
			t.Errorf("expected search gift, got %s", gotQuery.Search)
		}
		if gotQuery.MinPrice == nil || !gotQuery.MinPrice.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected min price 10, got %v", gotQuery.MinPrice)
		}
		if gotQuery.MaxPrice == nil || !gotQuery.MaxPrice.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected max price 50, got %v", gotQuery.MaxPrice)
		}
		if gotQuery.Sort != catalog.SortPriceAsc {
			t.Errorf("expected price_asc sort, got %s", gotQuery.Sort)
		}
		if gotQuery.AdminMode {
			t.Error("storefront listing must not run in admin mode")
		}
	})

	t.Run("defaults to home", func(t *testing.T) {
		var gotQuery catalog.Query
		catalogSvc := &mockCatalogService{
			listServicesFn: func(q catalog.Query) ([]models.ServiceItem, error) {
				gotQuery = q
				return nil, nil
			},
		}
		r := setupCatalogRouter(newCatalogHandler(catalogSvc, nil, nil, nil))

		doRequest(r, "GET", "/services", "")

		if gotQuery.CategoryID != catalog.NavHome {
			t.Errorf("expected home pseudo-category, got %s", gotQuery.CategoryID)
		}
	})

	t.Run("rejects malformed price", func(t *testing.T) {
		r := setupCatalogRouter(newCatalogHandler(nil, nil, nil, nil))

		rec := doRequest(r, "GET", "/services?min_price=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects unknown sort key", func(t *testing.T) {
		r := setupCatalogRouter(newCatalogHandler(nil, nil, nil, nil))

		rec := doRequest(r, "GET", "/services?sort=cheapest", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("decorates with ratings and effective price", func(t *testing.T) {
		promo := decimal.NewFromInt(80)
		catalogSvc := &mockCatalogService{
			listServicesFn: func(catalog.Query) ([]models.ServiceItem, error) {
				return []models.ServiceItem{{
					Base:       models.Base{ID: "svc-1"},
					Name:       "Netflix",
					Price:      decimal.NewFromInt(100),
					PromoPrice: &promo,
				}}, nil
			},
		}
		reviewSvc := &mockReviewService{
			aggregateManyFn: func([]string) (map[string]models.RatingAggregate, error) {
				return map[string]models.RatingAggregate{
					"svc-1": {Average: 4.5, Count: 12},
				}, nil
			},
		}
		r := setupCatalogRouter(newCatalogHandler(catalogSvc, reviewSvc, nil, nil))

		rec := doRequest(r, "GET", "/services", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		items := parseJSON(t, rec)["services"].([]interface{})
		if len(items) != 1 {
			t.Fatalf("expected 1 service, got %d", len(items))
		}
		view := items[0].(map[string]interface{})
		if view["effective_price"] != "80" {
			t.Errorf("expected effective price 80, got %v", view["effective_price"])
		}
		if view["promo"] != true {
			t.Error("expected promo flag")
		}
		rating := view["rating"].(map[string]interface{})
		if rating["average"] != 4.5 {
			t.Errorf("expected average 4.5, got %v", rating["average"])
		}
	})

	t.Run("flags subcategory pending", func(t *testing.T) {
		catalogSvc := &mockCatalogService{
			listServicesFn: func(catalog.Query) ([]models.ServiceItem, error) {
				return nil, nil
			},
		}
		taxonomySvc := &mockTaxonomyService{
			getCategoryFn: func(id string) (*models.Category, error) {
				return &models.Category{
					ID:            id,
					Subcategories: []models.Subcategory{{ID: "STEAM"}},
				}, nil
			},
		}
		r := setupCatalogRouter(newCatalogHandler(catalogSvc, nil, nil, taxonomySvc))

		rec := doRequest(r, "GET", "/services?category=GAMING", "")

		result := parseJSON(t, rec)
		if result["subcategory_pending"] != true {
			t.Error("expected subcategory_pending for a category with subcategories and no path")
		}

		rec = doRequest(r, "GET", "/services?category=GAMING&path=STEAM", "")
		result = parseJSON(t, rec)
		if result["subcategory_pending"] != false {
			t.Error("expected no pending flag once a path is selected")
		}
	})
}

func TestCatalogHandler_AdminCreateService(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		catalogSvc := &mockCatalogService{
			createServiceFn: func(input services.ServiceInput) (*models.ServiceItem, error) {
				return &models.ServiceItem{Base: models.Base{ID: "svc-1"}, Name: input.Name}, nil
			},
		}
		r := setupCatalogRouter(newCatalogHandler(catalogSvc, nil, nil, nil))

		rec := doRequest(r, "POST", "/admin/services",
			`{"name":"Spotify","category_id":"MUSIC","price":"9.99","currency":"USD"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		r := setupCatalogRouter(newCatalogHandler(nil, nil, nil, nil))

		rec := doRequest(r, "POST", "/admin/services",
			`{"name":"Spotify","category_id":"MUSIC","price":"9.99","currency":"XXX"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCatalogHandler_SetServiceActive(t *testing.T) {
	t.Run("passes the flag through", func(t *testing.T) {
		var gotActive bool
		catalogSvc := &mockCatalogService{
			setServiceActiveFn: func(id string, active bool) (*models.ServiceItem, error) {
				gotActive = active
				return &models.ServiceItem{Base: models.Base{ID: id}, Active: active}, nil
			},
		}
		r := setupCatalogRouter(newCatalogHandler(catalogSvc, nil, nil, nil))

		rec := doRequest(r, "PATCH", "/admin/services/svc-1/active", `{"active":false}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotActive {
			t.Error("expected active=false to be passed through")
		}
	})

	t.Run("requires the flag", func(t *testing.T) {
		r := setupCatalogRouter(newCatalogHandler(nil, nil, nil, nil))

		rec := doRequest(r, "PATCH", "/admin/services/svc-1/active", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
