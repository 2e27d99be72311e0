package services

import (
	"github.com/shopspring/decimal"

	"souqly/internal/catalog"
	"souqly/internal/handoff"
	"souqly/internal/models"
	"souqly/internal/pagination"
)

// SecondSubcategoryInput describes a terminal taxonomy node in a create
// or subtree-replace request. An empty ID is derived from the default name.
type SecondSubcategoryInput struct {
	ID           string
	Name         models.Localized
	Description  models.Localized
	Icon         string
	Color        string
	Fee          decimal.Decimal
	DisplayOrder int
}

// SubcategoryInput describes a level-1 taxonomy node with its children.
type SubcategoryInput struct {
	ID                  string
	Name                models.Localized
	Description         models.Localized
	Icon                string
	Color               string
	Fee                 decimal.Decimal
	DisplayOrder        int
	SecondSubcategories []SecondSubcategoryInput
}

// CategoryInput describes a top-level category with its full subtree.
type CategoryInput struct {
	ID            string
	Name          models.Localized
	Description   models.Localized
	Icon          string
	Color         string
	DisplayOrder  int
	Subcategories []SubcategoryInput
}

// TaxonomyServicer is the category tree store: the three-level hierarchy
// with admin mutation and consistent fan-out to children.
type TaxonomyServicer interface {
	List() ([]models.Category, error)
	GetCategory(id string) (*models.Category, error)
	CreateCategory(input CategoryInput) (*models.Category, error)
	// UpdateCategory replaces the full subtree: after it returns, the
	// persisted children set exactly equals the submitted set.
	UpdateCategory(id string, input CategoryInput) (*models.Category, error)
	// DeleteCategory cascades to all descendants but refuses while any
	// service still references the category.
	DeleteCategory(id string) error
}

// ServiceInput carries admin-supplied service fields.
type ServiceInput struct {
	Name                string
	Description         string
	CategoryID          string
	SubcategoryID       *string
	SecondSubcategoryID *string
	Price               decimal.Decimal
	PromoPrice          *decimal.Decimal
	BadgeLabel          string
	Currency            string
	Conditions          string
	RequiredInfo        string
	Active              bool
	Popularity          int
}

// CatalogServicer exposes the service catalog: filtered browsing for the
// storefront and CRUD for the back office.
type CatalogServicer interface {
	ListServices(q catalog.Query) ([]models.ServiceItem, error)
	GetService(id string) (*models.ServiceItem, error)
	CreateService(input ServiceInput) (*models.ServiceItem, error)
	UpdateService(id string, input ServiceInput) (*models.ServiceItem, error)
	SetServiceActive(id string, active bool) (*models.ServiceItem, error)
	// DeleteService cascade-deletes reviews and favorites and nulls the
	// service reference on orders, preserving their snapshots.
	DeleteService(id string) error
}

// CreateOrderInput is the validated customer form plus the selection.
type CreateOrderInput struct {
	UserID      *string
	ServiceID   string
	Email       string
	Phone       string
	Details     string
	AcceptTerms bool
}

// StatusUpdate is the result of an admin status mutation. StatusChanged
// distinguishes a real transition from a notes-only edit.
type StatusUpdate struct {
	Order         *models.Order `json:"order"`
	StatusChanged bool          `json:"status_changed"`
}

// OrderServicer manages the order lifecycle.
type OrderServicer interface {
	Create(input CreateOrderInput) (*models.Order, handoff.Message, error)
	// Cancel is customer-initiated and only allowed from pending_whatsapp.
	Cancel(orderID string, userID *string, email string) (*models.Order, error)
	// UpdateStatus is admin-only and intentionally unrestricted: any
	// status may be set from any status.
	UpdateStatus(orderID string, status models.OrderStatus, internalNotes *string, actorID string) (*StatusUpdate, error)
	GetByID(orderID string) (*models.Order, error)
	ListForCustomer(userID string) ([]models.Order, error)
	ListForEmail(email string) ([]models.Order, error)
	ListAll(page pagination.PageRequest, status *models.OrderStatus) (*pagination.PageResponse[models.Order], error)
}

// ReviewServicer manages per-service ratings and their aggregates.
type ReviewServicer interface {
	Create(userID, serviceID string, rating int, comment string) (*models.Review, error)
	ListForService(serviceID string) ([]models.Review, error)
	Aggregate(serviceID string) (models.RatingAggregate, error)
	AggregateMany(serviceIDs []string) (map[string]models.RatingAggregate, error)
	Delete(reviewID, requesterID string, requesterRole models.Role) error
}

// FavoriteServicer manages per-owner favorite sets. ownerKey is a user
// ID or a guest session key.
type FavoriteServicer interface {
	// Toggle flips membership and returns the new state.
	Toggle(ownerKey, serviceID string) (bool, error)
	List(ownerKey string) ([]models.ServiceItem, error)
	Set(ownerKey string) (map[string]struct{}, error)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name, phone string) (*models.User, error)
	CreateGoogleUser(email, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	SetRole(userID string, role models.Role) (*models.User, error)
	SetActive(userID string, active bool) (*models.User, error)
	// EnsureAdmin bootstraps the first admin account from configuration.
	EnsureAdmin(email, password string) error
}

// SettingsServicer exposes the mutable global settings, currently the
// contact-channel number read by the hand-off and support flows.
type SettingsServicer interface {
	WhatsAppNumber() string
	SetWhatsAppNumber(number string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(actorID, action, resourceType, resourceID string, changes map[string]interface{})
	ListForResource(resourceType, resourceID string) ([]models.AuditLog, error)
}
