package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "souqly/internal/errors"
	"souqly/internal/services"
)

// FavoriteHandler handles the per-owner favorites set. It sits behind
// OptionalAuth: signed-in customers are keyed by user id, guests by the
// X-Guest-ID session header.
type FavoriteHandler struct {
	favoriteService services.FavoriteServicer
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteService services.FavoriteServicer) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// ToggleFavorite flips a service's membership in the caller's favorites
// @Summary     Toggle favorite
// @Description Add the service to the caller's favorites, or remove it if already present
// @Tags        favorites
// @Produce     json
// @Param       id path string true "Service id"
// @Param       X-Guest-ID header string false "Guest session key when unauthenticated"
// @Success     200 {object} map[string]bool "New membership state"
// @Failure     400 {object} ErrorResponse "No owner key"
// @Failure     404 {object} ErrorResponse "Service not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /favorites/{id}/toggle [post]
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	key := ownerKey(c)
	if key == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "authentication or X-Guest-ID header required"))
		return
	}

	favorited, err := h.favoriteService.Toggle(key, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

// ListFavorites returns the caller's favorited services
// @Summary     List favorites
// @Description Get the services in the caller's favorites set
// @Tags        favorites
// @Produce     json
// @Param       X-Guest-ID header string false "Guest session key when unauthenticated"
// @Success     200 {array} models.ServiceItem "Favorited services"
// @Failure     400 {object} ErrorResponse "No owner key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	key := ownerKey(c)
	if key == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "authentication or X-Guest-ID header required"))
		return
	}

	items, err := h.favoriteService.List(key)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": items})
}
