package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "souqly/internal/errors"
	"souqly/internal/models"
	"souqly/internal/services"
)

func setupTaxonomyRouter(handler *TaxonomyHandler) *gin.Engine {
	r := gin.New()
	r.GET("/categories", handler.ListCategories)
	r.GET("/categories/:id", handler.GetCategory)

	admin := r.Group("/admin", injectUser("admin-1", "admin"))
	admin.POST("/categories", handler.CreateCategory)
	admin.PUT("/categories/:id", handler.UpdateCategory)
	admin.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestTaxonomyHandler_CreateCategory(t *testing.T) {
	t.Run("maps the nested payload", func(t *testing.T) {
		var gotInput services.CategoryInput
		taxonomySvc := &mockTaxonomyService{
			createCategoryFn: func(input services.CategoryInput) (*models.Category, error) {
				gotInput = input
				return &models.Category{ID: "GAMING"}, nil
			},
		}
		r := setupTaxonomyRouter(NewTaxonomyHandler(taxonomySvc))

		rec := doRequest(r, "POST", "/admin/categories", `{
			"name": {"default": "Gaming", "fr": "Jeux"},
			"icon": "gamepad",
			"color": "#FF5500",
			"subcategories": [
				{
					"name": {"default": "Steam"},
					"fee": "2.5",
					"second_subcategories": [
						{"name": {"default": "Gift Cards"}}
					]
				}
			]
		}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotInput.Name.Default != "Gaming" || gotInput.Name.Fr != "Jeux" {
			t.Errorf("expected localized name mapped, got %+v", gotInput.Name)
		}
		if len(gotInput.Subcategories) != 1 {
			t.Fatalf("expected 1 subcategory, got %d", len(gotInput.Subcategories))
		}
		sub := gotInput.Subcategories[0]
		if sub.Fee.String() != "2.5" {
			t.Errorf("expected fee 2.5, got %s", sub.Fee)
		}
		if len(sub.SecondSubcategories) != 1 {
			t.Errorf("expected 1 second subcategory, got %d", len(sub.SecondSubcategories))
		}
	})

	t.Run("rejects unknown icon token", func(t *testing.T) {
		r := setupTaxonomyRouter(NewTaxonomyHandler(&mockTaxonomyService{}))

		rec := doRequest(r, "POST", "/admin/categories", `{"name":{"default":"X"},"icon":"rocketship"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects malformed color", func(t *testing.T) {
		r := setupTaxonomyRouter(NewTaxonomyHandler(&mockTaxonomyService{}))

		rec := doRequest(r, "POST", "/admin/categories", `{"name":{"default":"X"},"color":"red"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("maps slug conflict to 409", func(t *testing.T) {
		taxonomySvc := &mockTaxonomyService{
			createCategoryFn: func(services.CategoryInput) (*models.Category, error) {
				return nil, apperrors.ErrCategoryExists
			},
		}
		r := setupTaxonomyRouter(NewTaxonomyHandler(taxonomySvc))

		rec := doRequest(r, "POST", "/admin/categories", `{"name":{"default":"Gaming"}}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_EXISTS")
	})
}

func TestTaxonomyHandler_DeleteCategory(t *testing.T) {
	t.Run("maps in-use refusal to 409", func(t *testing.T) {
		taxonomySvc := &mockTaxonomyService{
			deleteCategoryFn: func(string) error { return apperrors.ErrCategoryInUse },
		}
		r := setupTaxonomyRouter(NewTaxonomyHandler(taxonomySvc))

		rec := doRequest(r, "DELETE", "/admin/categories/GAMING", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_IN_USE")
	})
}

func TestTaxonomyHandler_ListCategories(t *testing.T) {
	taxonomySvc := &mockTaxonomyService{
		listFn: func() ([]models.Category, error) {
			return []models.Category{{ID: "GAMING"}, {ID: "MUSIC"}}, nil
		},
	}
	r := setupTaxonomyRouter(NewTaxonomyHandler(taxonomySvc))

	rec := doRequest(r, "GET", "/categories", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 2 {
		t.Errorf("expected 2 categories, got %d", len(categories))
	}
}
