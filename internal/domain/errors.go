package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuctionNotFound is returned when no auction matches the requested token
	ErrAuctionNotFound = errors.New("auction not found")

	// ErrOfferAlreadyActive is returned when a token already has an active offer
	ErrOfferAlreadyActive = errors.New("token already has an active offer")

	// ErrCollectionNotAllowed is returned when a collection is unknown or disabled
	ErrCollectionNotAllowed = errors.New("collection is not enabled")

	// ErrStatusConflict is returned when a conditional state transition matched no row
	ErrStatusConflict = errors.New("status transition conflict")

	// ErrDuplicateTransaction is returned when a chain transaction was already recorded as a bid
	ErrDuplicateTransaction = errors.New("transaction already recorded")

	// ErrInvalidTransition is returned when the auction state machine does not allow a transition
	ErrInvalidTransition = errors.New("invalid auction status transition")
)

// ErrorKind is the caller-visible category of a failure
type ErrorKind string

const (
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindBadRequest ErrorKind = "bad_request"
	ErrorKindConflict   ErrorKind = "conflict"
)

// Error is a failure translated for the caller.
// Cause is kept for logging only and never shown to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: ErrorKindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewBadRequestError creates a bad-request error
func NewBadRequestError(format string, args ...any) *Error {
	return &Error{Kind: ErrorKindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError creates a conflict error wrapping the infrastructure cause
func NewConflictError(cause error, format string, args ...any) *Error {
	return &Error{Kind: ErrorKindConflict, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the kind of err, or the empty kind when err carries none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return KindOf(err) == ErrorKindNotFound
}

// IsBadRequest reports whether err is a bad-request error
func IsBadRequest(err error) bool {
	return KindOf(err) == ErrorKindBadRequest
}

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool {
	return KindOf(err) == ErrorKindConflict
}
