package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "souqly/internal/errors"
	"souqly/internal/logger"
	"souqly/internal/middleware"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID.(string), nil
}

// optionalUserID returns the user ID when a token was presented, nil for
// guests. Used behind OptionalAuth.
func optionalUserID(c *gin.Context) *string {
	if userID, exists := c.Get(middleware.CtxUserID); exists {
		id := userID.(string)
		return &id
	}
	return nil
}

// ownerKey resolves the favorites owner for the request: the user ID for
// authenticated customers, a prefixed client session key for guests. The
// prefix keeps the two namespaces from ever colliding.
func ownerKey(c *gin.Context) string {
	if userID, exists := c.Get(middleware.CtxUserID); exists {
		return userID.(string)
	}
	if guestID := c.GetHeader("X-Guest-ID"); guestID != "" {
		return "guest:" + guestID
	}
	return ""
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
