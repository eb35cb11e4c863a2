package apperrors

import (
	"errors"
)

// Kind classifies a failure surfaced to API callers. The string value is the
// stable code published in GraphQL error extensions.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindAlreadyEnrolled Kind = "ALREADY_ENROLLED"
	KindNotAuthorized   Kind = "NOT_AUTHORIZED"
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindPersistence     Kind = "PERSISTENCE_ERROR"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrPersistence     = errors.New("persistence error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindAlreadyEnrolled:
		return ErrAlreadyEnrolled
	case KindNotAuthorized:
		return ErrNotAuthorized
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindPersistence:
		return ErrPersistence
	default:
		return nil
	}
}

// Error is a typed failure with a human-readable message. Err holds the
// underlying cause, if any, and is never shown to callers.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) and friends match on the kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Extensions implements the graphql-go ExtendedError interface.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code": string(e.Kind),
	}
	if len(e.Fields) > 0 {
		ext["fields"] = e.Fields
	}
	return ext
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func AlreadyEnrolled(message string) *Error {
	return &Error{Kind: KindAlreadyEnrolled, Message: message}
}

func NotAuthorized(message string) *Error {
	return &Error{Kind: KindNotAuthorized, Message: message}
}

func InvalidArgument(message string, fields map[string]string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message, Fields: fields}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when
// err carries none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Ensure wraps any error that is not already typed as a persistence failure
// carrying message. Typed errors pass through untouched.
func Ensure(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Persistence(message, err)
}
