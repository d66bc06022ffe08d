package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors
	ErrorTypeUnauthorized     ErrorType = "UNAUTHORIZED"
	ErrorTypeNotFound         ErrorType = "NOT_FOUND"
	ErrorTypeAlreadyExists    ErrorType = "ALREADY_EXISTS"
	ErrorTypeAlreadyFollowing ErrorType = "ALREADY_FOLLOWING"
	ErrorTypeNotFollowing     ErrorType = "NOT_FOLLOWING"
	ErrorTypeValidation       ErrorType = "VALIDATION"
	ErrorTypeUnknownType      ErrorType = "UNKNOWN_TYPE"

	// Storage errors
	ErrorTypeCorruptRecord    ErrorType = "CORRUPT_RECORD"
	ErrorTypeStoreUnavailable ErrorType = "STORE_UNAVAILABLE"

	// Application errors
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError carries a stable error kind plus a human-readable message.
// Callers map the kind to display text; they never infer success from a
// missing error.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Constructor functions for common error types

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewAlreadyExistsError creates a duplicate-prevention error
func NewAlreadyExistsError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAlreadyExists,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewAlreadyFollowingError indicates a follow edge already exists
func NewAlreadyFollowingError(targetID string) *AppError {
	return &AppError{
		Type:       ErrorTypeAlreadyFollowing,
		Message:    "user already followed",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]interface{}{"targetSubjectId": targetID},
	}
}

// NewNotFollowingError indicates an unfollow of a non-existent edge
func NewNotFollowingError(targetID string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFollowing,
		Message:    "user not followed",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]interface{}{"targetSubjectId": targetID},
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnknownTypeError indicates a component or post subtype with no
// registered schema
func NewUnknownTypeError(kind string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnknownType,
		Message:    fmt.Sprintf("unknown type: %s", kind),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewCorruptRecordError indicates stored data that fails decode. This is
// distinct from NOT_FOUND: the row exists but its shape is invalid.
func NewCorruptRecordError(resource string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeCorruptRecord,
		Message:    fmt.Sprintf("stored %s record is invalid", resource),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewStoreUnavailableError creates a transient backend failure error.
// These are surfaced to the caller rather than retried internally.
func NewStoreUnavailableError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeStoreUnavailable,
		Message:    fmt.Sprintf("store operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsUnauthorized checks if an error is an unauthorized error
func IsUnauthorized(err error) bool {
	return IsType(err, ErrorTypeUnauthorized)
}

// IsAlreadyFollowing checks if an error is a duplicate-follow error
func IsAlreadyFollowing(err error) bool {
	return IsType(err, ErrorTypeAlreadyFollowing)
}

// IsNotFollowing checks if an error is an unfollow-of-non-edge error
func IsNotFollowing(err error) bool {
	return IsType(err, ErrorTypeNotFollowing)
}

// IsCorruptRecord checks if an error is a corrupt record error
func IsCorruptRecord(err error) bool {
	return IsType(err, ErrorTypeCorruptRecord)
}

// HTTPStatusFor maps an error to the status code its kind carries.
// Unknown errors map to 500.
func HTTPStatusFor(err error) int {
	if appErr := GetAppError(err); appErr != nil && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	// Otherwise create a new internal error
	return NewInternalError(message, err)
}
