// Package apperror classifies failures so the HTTP layer can pick a status
// code without inspecting driver errors.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of an application error.
type Kind int

const (
	// Internal is any failure not covered by another kind.
	Internal Kind = iota
	// Validation is a missing or malformed input field.
	Validation
	// Auth is a failed credential or token check.
	Auth
	// NotFound means no matching row.
	NotFound
	// Conflict means the row already exists, e.g. a duplicate email.
	Conflict
	// Store is a database failure.
	Store
	// TooLarge means the request body exceeded the size limit.
	TooLarge
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Auth:
		return "auth"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Store:
		return "store"
	case TooLarge:
		return "too_large"
	default:
		return "internal"
	}
}

// Error carries a client-safe Message and an optional underlying Err.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation reasons.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case TooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

func NewAuth(message string) *Error {
	return &Error{Kind: Auth, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

func NewConflict(message string, err error) *Error {
	return &Error{Kind: Conflict, Message: message, Err: err}
}

func NewStore(message string, err error) *Error {
	return &Error{Kind: Store, Message: message, Err: err}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or Internal when err is not an *Error.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return Internal
}

func IsNotFound(err error) bool   { return KindOf(err) == NotFound }
func IsConflict(err error) bool   { return KindOf(err) == Conflict }
func IsValidation(err error) bool { return KindOf(err) == Validation }
