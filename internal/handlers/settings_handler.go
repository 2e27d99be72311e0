package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "souqly/internal/errors"
	"souqly/internal/handoff"
	"souqly/internal/services"
)

// SettingsHandler exposes the contact channel: a public support link for
// the storefront and the admin mutation behind it.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest is the admin settings payload.
type UpdateSettingsRequest struct {
	WhatsAppNumber string `json:"whatsapp_number" binding:"required,max=32"`
}

// GetContact returns the public support contact link
// @Summary     Get contact link
// @Description Get the configured WhatsApp support link for the contact flow
// @Tags        settings
// @Produce     json
// @Success     200 {object} map[string]string "Contact link"
// @Router      /contact [get]
func (h *SettingsHandler) GetContact(c *gin.Context) {
	number := h.settingsService.WhatsAppNumber()
	c.JSON(http.StatusOK, gin.H{
		"whatsapp_number": number,
		"link":            handoff.SupportLink(number),
	})
}

// GetSettings returns the current admin settings
// @Summary     Get settings (admin)
// @Description Get the mutable global settings
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Settings"
// @Router      /admin/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"whatsapp_number": h.settingsService.WhatsAppNumber(),
	})
}

// UpdateSettings mutates the admin settings
// @Summary     Update settings (admin)
// @Description Set the WhatsApp number used by the hand-off and contact flows
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateSettingsRequest true "Settings payload"
// @Success     200 {object} map[string]string "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.settingsService.SetWhatsAppNumber(req.WhatsAppNumber); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"whatsapp_number": h.settingsService.WhatsAppNumber(),
	})
}
