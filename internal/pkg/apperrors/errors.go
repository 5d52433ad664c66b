package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
)

// Item errors
var (
	ErrItemNotFound = errors.New("item not found")
	ErrItemDeleted  = errors.New("item has been deleted")
	ErrItemClosed   = errors.New("item is closed for new participants")
	ErrPastDeadline = errors.New("item deadline has passed")
)

// Content errors
var (
	ErrContentNotFound    = errors.New("content not found")
	ErrContentPayload     = errors.New("content payload does not match content type")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrOptionNotFound     = errors.New("option category not found")
	ErrOptionItemNotFound = errors.New("option item not found")
)

// Record and payment errors
var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrOptionSelection     = errors.New("exactly one option must be selected per category")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentTransition   = errors.New("payment status cannot move backwards")
	ErrPaymentAlreadyPaid  = errors.New("payment has already been settled")
	ErrQuantityNotPositive = errors.New("quantity must be positive")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewNotFoundError creates a new custom error wrapping ErrResourceNotFound
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error wrapping ErrPermissionDenied
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error wrapping ErrBadRequest
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}
