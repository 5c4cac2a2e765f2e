package model

import "errors"

// Kind classifies an Error for the presentation layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindBackend
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindBackend:
		return "backend"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the domain error returned by every workflow operation.
// Message is safe to show to the guest; Err keeps the underlying cause.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and message, so wrapped
// copies of a sentinel still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrNotAuthenticated = &Error{Kind: KindAuthorization, Message: "You must be logged in"}
	ErrNotAuthorized    = &Error{Kind: KindAuthorization, Message: "You are not allowed to modify this booking"}
	ErrMissingDates     = &Error{Kind: KindValidation, Field: "dates", Message: "Please select a start and end date"}
	ErrDatesUnavailable = &Error{Kind: KindValidation, Field: "dates", Message: "Selected dates are not available"}
	ErrCabinNotFound    = &Error{Kind: KindNotFound, Message: "Cabin not found"}
	ErrBookingNotFound  = &Error{Kind: KindNotFound, Message: "Booking not found"}
)

// Validation builds a validation error for field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Backend builds a storage failure with a fixed guest-facing message.
func Backend(message string, cause error) *Error {
	return &Error{Kind: KindBackend, Message: message, Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
