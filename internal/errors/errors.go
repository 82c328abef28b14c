// Package errors provides custom error types for the SpendSmart API.
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

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrInvalidCategory = &AppError{Code: "INVALID_CATEGORY", Message: "Unknown expense category", StatusCode: http.StatusBadRequest}
)

// Goal errors.
var (
	ErrGoalNotFound     = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrInvalidDateRange = &AppError{Code: "INVALID_DATE_RANGE", Message: "End date cannot be before start date", StatusCode: http.StatusBadRequest}
)

// Piggy bank errors.
var (
	ErrPiggyPasswordMismatch = &AppError{Code: "PIGGY_PASSWORD_MISMATCH", Message: "Passwords don't match", StatusCode: http.StatusBadRequest}
	ErrPiggyPasswordTooShort = &AppError{Code: "PIGGY_PASSWORD_TOO_SHORT", Message: "Password must be at least 4 characters", StatusCode: http.StatusBadRequest}
	ErrPiggyPasswordWrong    = &AppError{Code: "PIGGY_PASSWORD_WRONG", Message: "The password you entered is incorrect", StatusCode: http.StatusUnauthorized}
	ErrInsufficientFunds     = &AppError{Code: "INSUFFICIENT_FUNDS", Message: "You don't have enough money in your piggy bank", StatusCode: http.StatusBadRequest}
	ErrUnknownCurrency       = &AppError{Code: "UNKNOWN_CURRENCY", Message: "Unsupported display currency", StatusCode: http.StatusBadRequest}
)

// Feedback errors.
var (
	ErrFeedbackNotFound = &AppError{Code: "FEEDBACK_NOT_FOUND", Message: "Feedback not found", StatusCode: http.StatusNotFound}
)

// Deletion request errors.
var (
	ErrDeletionRequestNotFound = &AppError{Code: "DELETION_REQUEST_NOT_FOUND", Message: "Deletion request not found", StatusCode: http.StatusNotFound}
	ErrDeletionRequestResolved = &AppError{Code: "DELETION_REQUEST_RESOLVED", Message: "Deletion request has already been resolved", StatusCode: http.StatusConflict}
)
