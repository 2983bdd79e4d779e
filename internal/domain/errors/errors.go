// Package errors defines the application error taxonomy shared by the use cases and the delivery layer.
package errors

import (
	"net/http"

	"estate/internal/errors"
)

// Kind classifies an error independently of its concrete type.
type Kind string

const (
	KindValidationFailed      Kind = "ValidationFailed"
	KindAuthenticationFailed  Kind = "AuthenticationFailed"
	KindAuthorizationDenied   Kind = "AuthorizationDenied"
	KindNotFound              Kind = "NotFound"
	KindConflict              Kind = "Conflict"
	KindDependencyUnavailable Kind = "DependencyUnavailable"
	KindInternal              Kind = "Internal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error classification
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error classification
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types
var (
	// Validation
	ErrValidationFailed = NewBaseError(KindValidationFailed, http.StatusBadRequest,
		"VALIDATION_FAILED", "Input validation failed")
	ErrCurrentPasswordRequired = NewBaseError(KindValidationFailed, http.StatusBadRequest,
		"CURRENT_PASSWORD_REQUIRED", "Current password is required")

	// Authentication
	ErrAuthenticationRequired = NewBaseError(KindAuthenticationFailed, http.StatusUnauthorized,
		"AUTHENTICATION_REQUIRED", "Authentication required")
	ErrInvalidToken = NewBaseError(KindAuthenticationFailed, http.StatusUnauthorized,
		"INVALID_TOKEN", "Invalid or expired token")
	ErrInvalidCredentials = NewBaseError(KindAuthenticationFailed, http.StatusUnauthorized,
		"INVALID_CREDENTIALS", "Invalid email or password")
	ErrCurrentPasswordMismatch = NewBaseError(KindAuthenticationFailed, http.StatusUnauthorized,
		"CURRENT_PASSWORD_MISMATCH", "Current password is incorrect")

	// Authorization
	ErrAuthorizationDenied = NewBaseError(KindAuthorizationDenied, http.StatusForbidden,
		"AUTHORIZATION_DENIED", "You do not have permission to perform this action")

	// Not found
	ErrNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"NOT_FOUND", "Resource not found")
	ErrPrincipalNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"USER_NOT_FOUND", "User not found")
	ErrSellerNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"SELLER_NOT_FOUND", "Seller not found")
	ErrCustomerNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"CUSTOMER_NOT_FOUND", "Customer not found")
	ErrListingNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"PROPERTY_NOT_FOUND", "Property not found")
	ErrConversationNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"CHAT_NOT_FOUND", "Chat session not found")

	// Conflict
	ErrConflict = NewBaseError(KindConflict, http.StatusConflict,
		"CONFLICT", "Resource conflict")
	ErrEmailTaken = NewBaseError(KindConflict, http.StatusConflict,
		"EMAIL_TAKEN", "This email is already registered")
	ErrUsernameTaken = NewBaseError(KindConflict, http.StatusConflict,
		"USERNAME_TAKEN", "This username is already taken")

	// Dependencies
	ErrDependencyUnavailable = NewBaseError(KindDependencyUnavailable, http.StatusServiceUnavailable,
		"DEPENDENCY_UNAVAILABLE", "A required service is unavailable, please try again later")

	// General
	ErrInternalError = NewBaseError(KindInternal, http.StatusInternalServerError,
		"INTERNAL_ERROR", "Internal server error")
)

// KindOf returns the Kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field validation failures.
type ValidationError struct {
	fields []FieldError
}

// NewValidationError creates a validation error for the given fields.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{fields: fields}
}

// NewFieldError is a shorthand for a validation error on a single field.
func NewFieldError(field, message string) *ValidationError {
	return NewValidationError(FieldError{Field: field, Message: message})
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.fields) == 1 {
		return e.fields[0].Field + ": " + e.fields[0].Message
	}

	return ErrValidationFailed.Message()
}

// Is lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Kind returns KindValidationFailed
func (e *ValidationError) Kind() Kind { return KindValidationFailed }

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int { return http.StatusBadRequest }

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string { return ErrValidationFailed.ErrorCode() }

// Message returns the user-friendly error message
func (e *ValidationError) Message() string { return ErrValidationFailed.Message() }

// Details returns detailed error information
func (e *ValidationError) Details() string { return e.Error() }

// Fields returns the invalid fields.
func (e *ValidationError) Fields() []FieldError {
	return e.fields
}

// DependencyError represents a failure of the store or another external capability.
type DependencyError struct {
	err     error
	details string
}

// NewDependencyError wraps a store or capability failure as DependencyUnavailable.
func NewDependencyError(err error, details string) AppError {
	return &DependencyError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DependencyError) Error() string {
	return errors.Wrap(e.err, e.details).Error()
}

// Unwrap returns the underlying failure.
func (e *DependencyError) Unwrap() error {
	return e.err
}

// Is lets errors.Is match ErrDependencyUnavailable.
func (e *DependencyError) Is(target error) bool {
	return target == ErrDependencyUnavailable
}

// Kind returns KindDependencyUnavailable
func (e *DependencyError) Kind() Kind { return KindDependencyUnavailable }

// HTTPCode returns the HTTP status code
func (e *DependencyError) HTTPCode() int { return ErrDependencyUnavailable.HTTPCode() }

// ErrorCode returns the business error code
func (e *DependencyError) ErrorCode() string { return ErrDependencyUnavailable.ErrorCode() }

// Message returns the user-friendly error message
func (e *DependencyError) Message() string { return ErrDependencyUnavailable.Message() }

// Details returns detailed error information
func (e *DependencyError) Details() string { return e.details }
