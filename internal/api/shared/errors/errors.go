package errors

import (
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeValidationFailed ErrorCode = "validation_failed"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewConflictError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeConflict,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromDomain converts a translated service error to its API error.
// It returns nil when err carries no caller-visible kind.
func FromDomain(err error) *APIError {
	var domainErr *domain.Error
	if !stderrors.As(err, &domainErr) {
		return nil
	}

	switch domainErr.Kind {
	case domain.ErrorKindNotFound:
		return NewNotFoundError(domainErr.Message)
	case domain.ErrorKindBadRequest:
		return NewBadRequestError(domainErr.Message)
	case domain.ErrorKindConflict:
		return NewConflictError(domainErr.Message)
	default:
		return nil
	}
}
