// Package errors carries the typed errors the host layers hand to the HTTP and
// CLI surfaces. The pricing arithmetic never returns errors.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type is the category of an error.
type Type string

const (
	TypeInput       Type = "INPUT_ERROR"
	TypeConfig      Type = "CONFIG_ERROR"
	TypeNotFound    Type = "NOT_FOUND"
	TypeConflict    Type = "CONFLICT"
	TypeForbidden   Type = "FORBIDDEN"
	TypeUnavailable Type = "UNAVAILABLE"
	TypeInternal    Type = "INTERNAL_ERROR"
)

// Error is a categorized error with optional context.
type Error struct {
	Type    Type           `json:"type"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// With attaches a context value and returns e.
func (e *Error) With(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func New(t Type, message string) *Error {
	return &Error{Type: t, Message: message}
}

func Newf(t Type, format string, args ...any) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

func Wrap(t Type, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

// TypeOf walks the chain and returns the first typed category, TypeInternal
// when there is none.
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// As is errors.As.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// IsType reports whether any error in the chain has type t.
func IsType(err error, t Type) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Type == t
}

func Input(message string) *Error {
	return New(TypeInput, message)
}

func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

func NotFound(kind, id string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", kind, id)
}

func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
