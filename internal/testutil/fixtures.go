package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"souqly/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active email-provider user with a hashed
// password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Role:     models.RoleUser,
		Provider: models.ProviderEmail,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates an active admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote test admin: %v", err)
	}
	user.Role = models.RoleAdmin
	return user
}

// CreateTestCategory creates a bare category with a unique slug id.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	n := nextID()
	category := &models.Category{
		ID:   fmt.Sprintf("TEST_CATEGORY_%d", n),
		Name: models.Localized{Default: fmt.Sprintf("Test Category %d", n)},
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSubcategory creates a subcategory under the given category
// with the given fee percentage.
func CreateTestSubcategory(t *testing.T, db *gorm.DB, categoryID string, fee decimal.Decimal) *models.Subcategory {
	t.Helper()

	n := nextID()
	sub := &models.Subcategory{
		ID:         fmt.Sprintf("TEST_SUBCATEGORY_%d", n),
		CategoryID: categoryID,
		Name:       models.Localized{Default: fmt.Sprintf("Test Subcategory %d", n)},
		Fee:        fee,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return sub
}

// CreateTestSecondSubcategory creates a terminal taxonomy node under the
// given subcategory.
func CreateTestSecondSubcategory(t *testing.T, db *gorm.DB, subcategoryID string, fee decimal.Decimal) *models.SecondSubcategory {
	t.Helper()

	n := nextID()
	leaf := &models.SecondSubcategory{
		ID:            fmt.Sprintf("TEST_LEAF_%d", n),
		SubcategoryID: subcategoryID,
		Name:          models.Localized{Default: fmt.Sprintf("Test Leaf %d", n)},
		Fee:           fee,
	}
	if err := db.Create(leaf).Error; err != nil {
		t.Fatalf("failed to create test second subcategory: %v", err)
	}
	return leaf
}

// CreateTestService creates an active service in the given category.
func CreateTestService(t *testing.T, db *gorm.DB, categoryID string) *models.ServiceItem {
	t.Helper()
	return CreateTestServiceWithPrice(t, db, categoryID, decimal.NewFromInt(100))
}

// CreateTestServiceWithPrice creates an active service with the given price.
func CreateTestServiceWithPrice(t *testing.T, db *gorm.DB, categoryID string, price decimal.Decimal) *models.ServiceItem {
	t.Helper()

	item := &models.ServiceItem{
		Name:       fmt.Sprintf("Test Service %d", nextID()),
		CategoryID: categoryID,
		Price:      price,
		Currency:   "USD",
		Active:     true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	return item
}

// CreateTestOrder creates a pending order snapshotting the given service.
func CreateTestOrder(t *testing.T, db *gorm.DB, userID *string, item *models.ServiceItem) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:        userID,
		ServiceID:     &item.ID,
		ServiceName:   item.Name,
		Category:      item.CategoryID,
		Price:         item.Price,
		Currency:      item.Currency,
		CustomerInfo:  "account: test",
		CustomerEmail: fmt.Sprintf("order%d@test.com", nextID()),
		CustomerPhone: "+212600000001",
		Status:        models.OrderStatusPendingWhatsApp,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}

// CreateTestReview creates a review for the given service.
func CreateTestReview(t *testing.T, db *gorm.DB, userID, serviceID string, rating int) *models.Review {
	t.Helper()

	review := &models.Review{
		ServiceID: serviceID,
		UserID:    userID,
		UserName:  fmt.Sprintf("Reviewer %d", nextID()),
		Rating:    rating,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create test review: %v", err)
	}
	return review
}
