package errors

import (
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrInvalidCredentials = NewAuthenticationError("Invalid credentials")
	ErrNoToken            = NewAuthenticationError("Access denied. No token provided.")
	ErrInvalidToken       = NewAuthenticationError("Invalid token.")
	ErrForbidden          = NewAuthorizationError("Insufficient permissions")
	ErrUserNotFound       = NewNotFoundError("user", "User not found")
	ErrEmailExists        = NewValidationError("email", "Email already exists")
)

// ValidationError represents a validation failure with optional
// field-level details. It maps to HTTP 400.
type ValidationError struct {
	Field   string
	Message string
	Details []string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status code for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// AuthenticationError represents a failed credential or token check.
// It maps to HTTP 401.
type AuthenticationError struct {
	Message string
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status code for this error
func (e *AuthenticationError) HTTPStatus() int {
	return http.StatusUnauthorized
}

// AuthorizationError represents an authenticated request with an
// insufficient role. It maps to HTTP 403.
type AuthorizationError struct {
	Message string
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// Error implements the error interface
func (e *AuthorizationError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status code for this error
func (e *AuthorizationError) HTTPStatus() int {
	return http.StatusForbidden
}

// NotFoundError represents a resource not found error. It maps to HTTP 404.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status code for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// InternalError represents an unexpected fault with context. The wrapped
// cause is logged server-side; clients only ever see the generic message.
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatuser is implemented by errors that carry an HTTP status code.
// The gin handlers translate these once at the boundary.
type HTTPStatuser interface {
	HTTPStatus() int
}
