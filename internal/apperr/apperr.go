// Package apperr defines the error taxonomy shared by services and
// handlers. Services return *Error values; handlers map the kind to an
// HTTP status and the JSON error envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the API boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindDuplicate
	KindInsufficientStock
	KindInvalidTransition
)

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

// HTTPStatus maps the kind to the status the API returns: 400 for
// caller mistakes, 404 for missing references, 500 otherwise.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindDuplicate, KindInsufficientStock, KindInvalidTransition:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validationf reports missing or malformed input.
func Validationf(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

// NotFoundf reports a dangling reference.
func NotFoundf(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

// Duplicatef reports a unique-constraint conflict.
func Duplicatef(format string, args ...interface{}) *Error {
	return newf(KindDuplicate, format, args...)
}

// InsufficientStockf reports an outbound request exceeding on-hand stock.
func InsufficientStockf(format string, args ...interface{}) *Error {
	return newf(KindInsufficientStock, format, args...)
}

// InvalidTransitionf reports a disallowed status change.
func InvalidTransitionf(format string, args ...interface{}) *Error {
	return newf(KindInvalidTransition, format, args...)
}

// Internalf wraps an unexpected failure.
func Internalf(err error, format string, args ...interface{}) *Error {
	e := newf(KindInternal, format, args...)
	e.Err = err
	return e
}

// KindOf extracts the kind from an error chain, defaulting to internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusOf returns the HTTP status for any error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
