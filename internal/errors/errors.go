// Package errors provides custom error types for the Souqly API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Taxonomy errors.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryExists      = &AppError{Code: "CATEGORY_EXISTS", Message: "A category with this id already exists", StatusCode: http.StatusConflict}
	ErrCategoryInUse       = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is still referenced by services", StatusCode: http.StatusConflict}
	ErrSubcategoryNotFound = &AppError{Code: "SUBCATEGORY_NOT_FOUND", Message: "Subcategory not found", StatusCode: http.StatusNotFound}
)

// Service catalog errors.
var (
	ErrServiceNotFound = &AppError{Code: "SERVICE_NOT_FOUND", Message: "Service not found", StatusCode: http.StatusNotFound}
	ErrServiceInactive = &AppError{Code: "SERVICE_INACTIVE", Message: "Service is not available for ordering", StatusCode: http.StatusBadRequest}
)

// Order errors.
var (
	ErrOrderNotFound       = &AppError{Code: "ORDER_NOT_FOUND", Message: "Order not found", StatusCode: http.StatusNotFound}
	ErrEmailRequired       = &AppError{Code: "EMAIL_REQUIRED", Message: "A valid email address is required", StatusCode: http.StatusBadRequest}
	ErrPhoneRequired       = &AppError{Code: "PHONE_REQUIRED", Message: "A phone number is required", StatusCode: http.StatusBadRequest}
	ErrDetailsRequired     = &AppError{Code: "DETAILS_REQUIRED", Message: "Order details are required", StatusCode: http.StatusBadRequest}
	ErrTermsNotAccepted    = &AppError{Code: "TERMS_NOT_ACCEPTED", Message: "Terms must be accepted before ordering", StatusCode: http.StatusBadRequest}
	ErrOrderNotCancellable = &AppError{Code: "ORDER_NOT_CANCELLABLE", Message: "Only pending orders can be cancelled", StatusCode: http.StatusConflict}
	ErrInvalidOrderStatus  = &AppError{Code: "INVALID_ORDER_STATUS", Message: "Unknown order status", StatusCode: http.StatusBadRequest}
)

// Review errors.
var (
	ErrReviewNotFound = &AppError{Code: "REVIEW_NOT_FOUND", Message: "Review not found", StatusCode: http.StatusNotFound}
	ErrInvalidRating  = &AppError{Code: "INVALID_RATING", Message: "Rating must be between 1 and 5", StatusCode: http.StatusBadRequest}
)
