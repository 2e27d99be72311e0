package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"souqly/internal/catalog"
	apperrors "souqly/internal/errors"
	"souqly/internal/handoff"
	"souqly/internal/models"
	"souqly/internal/pagination"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// orderService manages the order lifecycle.
type orderService struct {
	db       *gorm.DB
	settings SettingsServicer
	audit    AuditServicer
}

// NewOrderService creates a new OrderServicer.
func NewOrderService(db *gorm.DB, settings SettingsServicer, audit AuditServicer) OrderServicer {
	return &orderService{db: db, settings: settings, audit: audit}
}

// Create validates the customer form, snapshots the selected service,
// persists the order in a single insert, and returns the WhatsApp
// hand-off message. The order is durable whether or not the customer
// completes the hand-off step.
func (s *orderService) Create(input CreateOrderInput) (*models.Order, handoff.Message, error) {
	var none handoff.Message

	if !input.AcceptTerms {
		return nil, none, apperrors.ErrTermsNotAccepted
	}
	email := strings.TrimSpace(input.Email)
	if !emailRegex.MatchString(email) {
		return nil, none, apperrors.ErrEmailRequired
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, none, apperrors.ErrPhoneRequired
	}
	if strings.TrimSpace(input.Details) == "" {
		return nil, none, apperrors.ErrDetailsRequired
	}

	var item models.ServiceItem
	if err := s.db.First(&item, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, none, apperrors.ErrServiceNotFound
		}
		return nil, none, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !item.Active {
		return nil, none, apperrors.ErrServiceInactive
	}

	price, promoApplied := catalog.EffectivePrice(item.Price, item.PromoPrice)
	price = catalog.ApplyFee(price, s.nodeFee(&item))

	order := &models.Order{
		UserID:        input.UserID,
		ServiceID:     &item.ID,
		ServiceName:   item.Name,
		Category:      s.categoryLabel(item.CategoryID),
		Subcategory:   s.subcategoryLabel(&item),
		Price:         price,
		Currency:      item.Currency,
		PromoApplied:  promoApplied,
		CustomerInfo:  strings.TrimSpace(input.Details),
		CustomerEmail: email,
		CustomerPhone: strings.TrimSpace(input.Phone),
		Status:        models.OrderStatusPendingWhatsApp,
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, none, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return order, handoff.Build(order, s.settings.WhatsAppNumber()), nil
}

// Cancel is the customer-side cancellation: only the order's owner may
// cancel, and only while the order is still pending the hand-off.
func (s *orderService) Cancel(orderID string, userID *string, email string) (*models.Order, error) {
	order, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	owned := false
	switch {
	case order.UserID != nil:
		owned = userID != nil && *userID == *order.UserID
	case email != "":
		owned = strings.EqualFold(email, order.CustomerEmail)
	}
	if !owned {
		return nil, apperrors.ErrForbidden
	}

	if order.Status != models.OrderStatusPendingWhatsApp {
		return nil, apperrors.ErrOrderNotCancellable
	}

	if err := s.db.Model(order).Update("status", models.OrderStatusCancelled).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	order.Status = models.OrderStatusCancelled
	return order, nil
}

// UpdateStatus overwrites status and internal notes unconditionally; the
// admin UI may move an order from any status to any status. A nil
// internalNotes preserves the existing notes. The audit entry records
// whether the status actually changed so the back office can distinguish
// a transition from a notes-only edit.
func (s *orderService) UpdateStatus(orderID string, status models.OrderStatus, internalNotes *string, actorID string) (*StatusUpdate, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.ErrInvalidOrderStatus
	}

	order, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	statusChanged := order.Status != status

	updates := map[string]interface{}{"status": status}
	if internalNotes != nil {
		updates["internal_notes"] = *internalNotes
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	oldStatus := order.Status
	order.Status = status
	if internalNotes != nil {
		order.InternalNotes = *internalNotes
	}

	s.audit.Log(actorID, "order.update_status", "order", order.ID, map[string]interface{}{
		"old_status":     oldStatus,
		"new_status":     status,
		"status_changed": statusChanged,
		"notes_updated":  internalNotes != nil,
	})

	return &StatusUpdate{Order: order, StatusChanged: statusChanged}, nil
}

// GetByID retrieves an order by ID.
func (s *orderService) GetByID(orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &order, nil
}

// ListForCustomer returns the orders of an authenticated customer.
func (s *orderService) ListForCustomer(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return orders, nil
}

// ListForEmail returns guest orders by case-insensitive email match.
// This is a separate lookup strategy from ListForCustomer, never
// combined with it.
func (s *orderService) ListForEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("LOWER(customer_email) = LOWER(?)", strings.TrimSpace(email)).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return orders, nil
}

// ListAll is the paginated back-office view, optionally filtered by status.
func (s *orderService) ListAll(page pagination.PageRequest, status *models.OrderStatus) (*pagination.PageResponse[models.Order], error) {
	page.Defaults()

	base := s.db.Model(&models.Order{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var orders []models.Order
	if err := base.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).Find(&orders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(orders, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// nodeFee resolves the processing fee for the deepest taxonomy node the
// service sits under: the leaf's fee wins over the subcategory's.
func (s *orderService) nodeFee(item *models.ServiceItem) decimal.Decimal {
	if item.SecondSubcategoryID != nil {
		var leaf models.SecondSubcategory
		if err := s.db.First(&leaf, "id = ?", *item.SecondSubcategoryID).Error; err == nil && !leaf.Fee.IsZero() {
			return leaf.Fee
		}
	}
	if item.SubcategoryID != nil {
		var sub models.Subcategory
		if err := s.db.First(&sub, "id = ?", *item.SubcategoryID).Error; err == nil {
			return sub.Fee
		}
	}
	return decimal.Zero
}

// categoryLabel resolves the default display label for the snapshot,
// falling back to the raw id if the category is gone.
func (s *orderService) categoryLabel(categoryID string) string {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		return categoryID
	}
	if category.Name.Default != "" {
		return category.Name.Default
	}
	return categoryID
}

// subcategoryLabel builds the subcategory snapshot, including the leaf
// when the service belongs to one.
func (s *orderService) subcategoryLabel(item *models.ServiceItem) string {
	if item.SubcategoryID == nil {
		return ""
	}
	label := *item.SubcategoryID
	var sub models.Subcategory
	if err := s.db.First(&sub, "id = ?", *item.SubcategoryID).Error; err == nil && sub.Name.Default != "" {
		label = sub.Name.Default
	}
	if item.SecondSubcategoryID != nil {
		leafLabel := *item.SecondSubcategoryID
		var leaf models.SecondSubcategory
		if err := s.db.First(&leaf, "id = ?", *item.SecondSubcategoryID).Error; err == nil && leaf.Name.Default != "" {
			leafLabel = leaf.Name.Default
		}
		label += " / " + leafLabel
	}
	return label
}
