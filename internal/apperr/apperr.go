// Package apperr defines the error kinds the core services report.
// Handlers translate kinds into HTTP status codes; the services themselves
// carry no transport semantics.
package apperr

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindUnprocessable
	KindInvalidInput
)

// Error is a recoverable per-request failure with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error     { return &Error{Kind: KindForbidden, Message: msg} }
func Conflict(msg string) *Error      { return &Error{Kind: KindConflict, Message: msg} }
func Unprocessable(msg string) *Error { return &Error{Kind: KindUnprocessable, Message: msg} }
func InvalidInput(msg string) *Error  { return &Error{Kind: KindInvalidInput, Message: msg} }

// KindOf returns the kind carried by err, or KindUnknown for errors that did
// not originate from the core services.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
