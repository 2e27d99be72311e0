package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "souqly/internal/errors"
	"souqly/internal/models"
	"souqly/internal/pagination"
	"souqly/internal/services"
)

// AdminUserHandler is the back-office user management surface.
type AdminUserHandler struct {
	userService services.UserServicer
}

// NewAdminUserHandler creates a new AdminUserHandler
func NewAdminUserHandler(userService services.UserServicer) *AdminUserHandler {
	return &AdminUserHandler{userService: userService}
}

// SetRoleRequest changes a user's role.
type SetRoleRequest struct {
	Role models.Role `json:"role" binding:"required,user_role"`
}

// SetUserActiveRequest enables or disables an account.
type SetUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ListUsers returns the paginated user list
// @Summary     List users (admin)
// @Description Get all user accounts, newest first
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.User] "Users"
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users [get]
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetUserRole changes a user's role
// @Summary     Set user role (admin)
// @Description Promote or demote a user between the user and admin roles
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User id"
// @Param       request body SetRoleRequest true "Role payload"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Unknown role"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users/{id}/role [patch]
func (h *AdminUserHandler) SetUserRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.SetRole(c.Param("id"), req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// SetUserActive enables or disables an account
// @Summary     Set user active (admin)
// @Description Disable an account to block logins without touching its orders or reviews
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User id"
// @Param       request body SetUserActiveRequest true "Active flag"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/users/{id}/active [patch]
func (h *AdminUserHandler) SetUserActive(c *gin.Context) {
	var req SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.SetActive(c.Param("id"), *req.Active)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}
