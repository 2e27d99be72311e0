package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "souqly/internal/errors"
	"souqly/internal/middleware"
	"souqly/internal/models"
	"souqly/internal/services"
)

// ReviewHandler handles review submission and moderation.
type ReviewHandler struct {
	reviewService services.ReviewServicer
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService services.ReviewServicer) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest is the review submission payload.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ListReviews returns a service's reviews with the rating aggregate
// @Summary     List reviews
// @Description Get a service's reviews, newest first, with the aggregate rating
// @Tags        reviews
// @Produce     json
// @Param       id path string true "Service id"
// @Success     200 {object} map[string]interface{} "Reviews and aggregate"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /services/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	serviceID := c.Param("id")

	reviews, err := h.reviewService.ListForService(serviceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	agg, err := h.reviewService.Aggregate(serviceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"rating":  agg,
	})
}

// CreateReview submits a review
// @Summary     Create review
// @Description Submit a 1-5 star review for a service
// @Tags        reviews
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Service id"
// @Param       request body CreateReviewRequest true "Review payload"
// @Success     201 {object} models.Review "Created review"
// @Failure     400 {object} ErrorResponse "Invalid rating"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Service not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /services/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	review, err := h.reviewService.Create(userID, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// DeleteReview removes a review
// @Summary     Delete review
// @Description Delete a review; authors may delete their own, admins any
// @Tags        reviews
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Review id"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Review not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	role := models.Role(c.GetString(middleware.CtxRole))
	if err := h.reviewService.Delete(c.Param("id"), userID, role); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
