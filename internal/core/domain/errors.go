package domain

import "errors"

// Error kinds. Every failure returned by the core wraps exactly one of these,
// so callers can branch with errors.Is regardless of the message.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
)

// Error is a typed failure: a machine-distinguishable Kind plus a message that
// is safe to show to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the kind to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Kind }

func Unauthenticated(msg string) *Error { return &Error{Kind: ErrUnauthenticated, Message: msg} }
func Forbidden(msg string) *Error       { return &Error{Kind: ErrForbidden, Message: msg} }
func NotFound(msg string) *Error        { return &Error{Kind: ErrNotFound, Message: msg} }
func Conflict(msg string) *Error        { return &Error{Kind: ErrConflict, Message: msg} }
func InvalidInput(msg string) *Error    { return &Error{Kind: ErrInvalidInput, Message: msg} }

var (
	ErrUserNotFound    = NotFound("user not found")
	ErrListingNotFound = NotFound("listing not found")
	ErrEmailTaken      = Conflict("email already registered")
	ErrInvalidLogin    = Unauthenticated("invalid email or password")
	ErrInvalidToken    = Unauthenticated("invalid or expired token")
	ErrAuthRequired    = Unauthenticated("authentication required")
)

// KindOf returns the kind wrapped by err, or nil when err carries none
// (store/connectivity failures).
func KindOf(err error) error {
	for _, kind := range []error{ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict, ErrInvalidInput} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// MessageOf returns the caller-facing message of a typed error.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	if k := KindOf(err); k != nil {
		return k.Error()
	}
	return ""
}
