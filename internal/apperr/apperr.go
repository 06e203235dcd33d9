// Package apperr defines the domain error taxonomy shared by the auth and user
// services. Handlers map a Kind to an HTTP status and never inspect anything
// more specific; infrastructure failures stay outside the taxonomy and surface
// as KindInternal.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind int

const (
	// KindInternal is any failure outside the domain taxonomy (store
	// unreachable, signing failure). Surfaced as a server-side fault.
	KindInternal Kind = iota
	// KindNotFound means no identity exists for the given lookup key.
	KindNotFound
	// KindUnauthorized means credential mismatch or invalid/expired refresh token.
	KindUnauthorized
	// KindConflict means registration with an already-used email.
	KindConflict
	// KindInvalidInput means malformed input or a store-layer inconsistency.
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}

// Error is a typed domain error with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New returns a domain error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns a domain error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, unwrapping as needed. Non-domain errors
// (including nil) report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
