package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "souqly/internal/errors"
	"souqly/internal/handoff"
	"souqly/internal/middleware"
	"souqly/internal/models"
	"souqly/internal/pagination"
	"souqly/internal/services"
)

// OrderHandler handles the order lifecycle: guest-friendly creation and
// lookup on the storefront side, full management on the admin side.
type OrderHandler struct {
	orderService services.OrderServicer
	auditService services.AuditServicer
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService services.OrderServicer, auditService services.AuditServicer) *OrderHandler {
	return &OrderHandler{orderService: orderService, auditService: auditService}
}

// CreateOrderRequest is the customer checkout form.
type CreateOrderRequest struct {
	ServiceID   string `json:"service_id" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Details     string `json:"details" binding:"required"`
	AcceptTerms bool   `json:"accept_terms"`
}

// CancelOrderRequest identifies a guest order by its email.
type CancelOrderRequest struct {
	Email string `json:"email"`
}

// UpdateOrderStatusRequest is the admin status mutation payload.
type UpdateOrderStatusRequest struct {
	Status        models.OrderStatus `json:"status" binding:"required,order_status"`
	InternalNotes *string            `json:"internal_notes"`
}

func orderJSON(order *models.Order) gin.H {
	return gin.H{
		"order":     order,
		"reference": handoff.Reference(order.ID),
	}
}

// CreateOrder places an order and returns the hand-off message
// @Summary     Create order
// @Description Place an order as a guest or signed-in customer; returns the WhatsApp hand-off message
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       request body CreateOrderRequest true "Checkout form"
// @Success     201 {object} map[string]interface{} "Order and hand-off message"
// @Failure     400 {object} ErrorResponse "Validation failure"
// @Failure     404 {object} ErrorResponse "Service not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	order, msg, err := h.orderService.Create(services.CreateOrderInput{
		UserID:      optionalUserID(c),
		ServiceID:   req.ServiceID,
		Email:       req.Email,
		Phone:       req.Phone,
		Details:     req.Details,
		AcceptTerms: req.AcceptTerms,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":     order,
		"reference": handoff.Reference(order.ID),
		"handoff":   msg,
	})
}

// ListMyOrders returns the authenticated customer's orders
// @Summary     List my orders
// @Description Get the signed-in customer's order history, newest first
// @Tags        orders
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Order "Orders"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/mine [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	orders, err := h.orderService.ListForCustomer(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// LookupOrders returns guest orders by email
// @Summary     Look up orders by email
// @Description Get guest orders matching the given email, case-insensitively
// @Tags        orders
// @Produce     json
// @Param       email query string true "Customer email"
// @Success     200 {array} models.Order "Orders"
// @Failure     400 {object} ErrorResponse "Missing email"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/lookup [get]
func (h *OrderHandler) LookupOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "email is required"))
		return
	}

	orders, err := h.orderService.ListForEmail(email)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// CancelOrder cancels a pending order
// @Summary     Cancel order
// @Description Cancel the caller's order while it is still pending the hand-off
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       id path string true "Order id"
// @Param       request body CancelOrderRequest false "Guest email for ownership check"
// @Success     200 {object} models.Order "Cancelled order"
// @Failure     403 {object} ErrorResponse "Not the order's owner"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     409 {object} ErrorResponse "Order no longer cancellable"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	// The body is optional: signed-in customers are identified by token,
	// guests supply their email.
	var req CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	order, err := h.orderService.Cancel(c.Param("id"), optionalUserID(c), req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}

// AdminListOrders returns the paginated back-office order list
// @Summary     List orders (admin)
// @Description Get all orders, newest first, optionally filtered by status
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Filter by order status"
// @Success     200 {object} pagination.PageResponse[models.Order] "Orders"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/orders [get]
func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := models.OrderStatus(raw)
		if !models.ValidOrderStatus(s) {
			respondWithError(c, apperrors.ErrInvalidOrderStatus)
			return
		}
		status = &s
	}

	result, err := h.orderService.ListAll(page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminGetOrder returns one order with its audit trail
// @Summary     Get order (admin)
// @Description Get an order with its status-change audit trail
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Order id"
// @Success     200 {object} map[string]interface{} "Order and audit trail"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/orders/{id} [get]
func (h *OrderHandler) AdminGetOrder(c *gin.Context) {
	order, err := h.orderService.GetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	trail, err := h.auditService.ListForResource("order", order.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":     order,
		"reference": handoff.Reference(order.ID),
		"audit":     trail,
	})
}

// AdminUpdateOrderStatus mutates an order's status and internal notes
// @Summary     Update order status (admin)
// @Description Set any status from any status; omitting internal_notes preserves the existing notes
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Order id"
// @Param       request body UpdateOrderStatusRequest true "Status payload"
// @Success     200 {object} services.StatusUpdate "Updated order"
// @Failure     400 {object} ErrorResponse "Unknown status"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/orders/{id}/status [patch]
func (h *OrderHandler) AdminUpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	actorID := c.GetString(middleware.CtxUserID)
	result, err := h.orderService.UpdateStatus(c.Param("id"), req.Status, req.InternalNotes, actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
