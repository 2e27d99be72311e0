package services

import (
	"testing"

	"souqly/internal/catalog"
	"souqly/internal/models"
	"souqly/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestCreateService(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCatalogService(db)
		cat := testutil.CreateTestCategory(t, db)

		item, err := svc.CreateService(ServiceInput{
			Name:       "Netflix Premium",
			CategoryID: cat.ID,
			Price:      decimal.NewFromInt(15),
			Currency:   "USD",
			Active:     true,
		})
		testutil.AssertNoError(t, err)

		if item.ID == "" {
			t.Fatal("expected generated service ID")
		}
		if !item.Price.Equal(decimal.NewFromInt(15)) {
			t.Errorf("expected price 15, got %s", item.Price)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCatalogService(db)

		_, err := svc.CreateService(ServiceInput{
			Name:       "Orphan",
			CategoryID: "MISSING",
			Price:      decimal.NewFromInt(1),
			Currency:   "USD",
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("subcategory_must_belong_to_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCatalogService(db)
		catA := testutil.CreateTestCategory(t, db)
		catB := testutil.CreateTestCategory(t, db)
		subOfB := testutil.CreateTestSubcategory(t, db, catB.ID, decimal.Zero)

		_, err := svc.CreateService(ServiceInput{
			Name:          "Misfiled",
			CategoryID:    catA.ID,
			SubcategoryID: &subOfB.ID,
			Price:         decimal.NewFromInt(1),
			Currency:      "USD",
		})
		testutil.AssertAppError(t, err, "SUBCATEGORY_NOT_FOUND")
	})

	t.Run("leaf_requires_subcategory", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCatalogService(db)
		cat := testutil.CreateTestCategory(t, db)
		sub := testutil.CreateTestSubcategory(t, db, cat.ID, decimal.Zero)
		leaf := testutil.CreateTestSecondSubcategory(t, db, sub.ID, decimal.Zero)

		_, err := svc.CreateService(ServiceInput{
			Name:                "Skipped a level",
			CategoryID:          cat.ID,
			SecondSubcategoryID: &leaf.ID,
			Price:               decimal.NewFromInt(1),
			Currency:            "USD",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCatalogService(db)
		cat := testutil.CreateTestCategory(t, db)

		_, err := svc.CreateService(ServiceInput{
			Name:       "Free money",
			CategoryID: cat.ID,
			Price:      decimal.NewFromInt(-5),
			Currency:   "USD",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateService(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCatalogService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)

		promo := decimal.NewFromInt(80)
		updated, err := svc.UpdateService(item.ID, ServiceInput{
			Name:       item.Name,
			CategoryID: cat.ID,
			Price:      decimal.NewFromInt(120),
			PromoPrice: &promo,
			BadgeLabel: "PROMO",
			Currency:   "USD",
			Active:     true,
		})
		testutil.AssertNoError(t, err)

		if !updated.Price.Equal(decimal.NewFromInt(120)) {
			t.Errorf("expected price 120, got %s", updated.Price)
		}
		if updated.PromoPrice == nil || !updated.PromoPrice.Equal(promo) {
			t.Errorf("expected promo price 80, got %v", updated.PromoPrice)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCatalogService(db)

		_, err := svc.UpdateService("missing", ServiceInput{Name: "X", Price: decimal.NewFromInt(1)})
		testutil.AssertAppError(t, err, "SERVICE_NOT_FOUND")
	})
}

func TestSetServiceActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCatalogService(db)
	cat := testutil.CreateTestCategory(t, db)
	item := testutil.CreateTestService(t, db, cat.ID)

	updated, err := svc.SetServiceActive(item.ID, false)
	testutil.AssertNoError(t, err)
	if updated.Active {
		t.Error("expected service to be inactive")
	}

	// Inactive services disappear from the storefront listing but stay
	// visible in admin mode.
	visible, err := svc.ListServices(catalog.Query{CategoryID: cat.ID})
	testutil.AssertNoError(t, err)
	if len(visible) != 0 {
		t.Errorf("expected no storefront results, got %d", len(visible))
	}

	adminVisible, err := svc.ListServices(catalog.Query{CategoryID: cat.ID, AdminMode: true})
	testutil.AssertNoError(t, err)
	if len(adminVisible) != 1 {
		t.Errorf("expected 1 admin result, got %d", len(adminVisible))
	}
}

func TestDeleteService(t *testing.T) {
	t.Run("cascades_and_preserves_order_snapshots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCatalogService(db)
		cat := testutil.CreateTestCategory(t, db)
		item := testutil.CreateTestService(t, db, cat.ID)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestReview(t, db, user.ID, item.ID, 5)
		order := testutil.CreateTestOrder(t, db, &user.ID, item)

		fav := models.Favorite{OwnerKey: user.ID, ServiceID: item.ID}
		if err := db.Create(&fav).Error; err != nil {
			t.Fatalf("failed to create favorite: %v", err)
		}

		testutil.AssertNoError(t, svc.DeleteService(item.ID))

		_, err := svc.GetService(item.ID)
		testutil.AssertAppError(t, err, "SERVICE_NOT_FOUND")

		var reviews, favorites int64
		db.Model(&models.Review{}).Where("service_id = ?", item.ID).Count(&reviews)
		db.Model(&models.Favorite{}).Where("service_id = ?", item.ID).Count(&favorites)
		if reviews != 0 || favorites != 0 {
			t.Errorf("expected reviews and favorites gone, got %d and %d", reviews, favorites)
		}

		var kept models.Order
		if err := db.First(&kept, "id = ?", order.ID).Error; err != nil {
			t.Fatalf("order should survive service deletion: %v", err)
		}
		if kept.ServiceID != nil {
			t.Error("expected order service reference to be nulled")
		}
		if kept.ServiceName != item.Name {
			t.Errorf("expected snapshot name %q to survive, got %q", item.Name, kept.ServiceName)
		}
		if !kept.Price.Equal(item.Price) {
			t.Errorf("expected snapshot price %s to survive, got %s", item.Price, kept.Price)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCatalogService(db)

		err := svc.DeleteService("missing")
		testutil.AssertAppError(t, err, "SERVICE_NOT_FOUND")
	})
}

func TestListServicesFiltering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCatalogService(db)
	cat := testutil.CreateTestCategory(t, db)
	other := testutil.CreateTestCategory(t, db)
	testutil.CreateTestServiceWithPrice(t, db, cat.ID, decimal.NewFromInt(10))
	testutil.CreateTestServiceWithPrice(t, db, cat.ID, decimal.NewFromInt(90))
	testutil.CreateTestServiceWithPrice(t, db, other.ID, decimal.NewFromInt(50))

	min := decimal.NewFromInt(50)
	results, err := svc.ListServices(catalog.Query{CategoryID: cat.ID, MinPrice: &min})
	testutil.AssertNoError(t, err)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Price.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected the 90 item, got price %s", results[0].Price)
	}
}
