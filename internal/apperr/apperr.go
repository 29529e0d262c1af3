// Package apperr defines the closed set of failure kinds that may cross from
// business logic into the transport layer. Every kind carries a fixed HTTP
// status code and a default client-facing message.
//
// New kinds are added here and nowhere else; the HTTP responder switches on
// Kind and relies on this set being exhaustive.
package apperr

import (
	"errors"
	"net/http"
)

// Kind identifies a class of failure.
type Kind int

const (
	// KindInternal is an unclassified failure: store unavailable, hashing
	// failure, programming error. Its detail is never shown to clients.
	KindInternal Kind = iota
	// KindBadRequest is a payload that fails domain validation.
	KindBadRequest
	// KindAuthFailed is a missing, invalid or expired credential, or bad sign-in data.
	KindAuthFailed
	// KindForbidden is an authenticated caller acting on a resource it does not own.
	KindForbidden
	// KindNotFound is a reference to a resource that does not exist.
	KindNotFound
	// KindConflict is a uniqueness violation.
	KindConflict
)

// Kinds lists every kind, in declaration order.
var Kinds = []Kind{KindInternal, KindBadRequest, KindAuthFailed, KindForbidden, KindNotFound, KindConflict}

// StatusCode returns the HTTP status code for k.
func (k Kind) StatusCode() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindAuthFailed:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DefaultMessage returns the message used when an error of kind k carries none.
func (k Kind) DefaultMessage() string {
	switch k {
	case KindBadRequest:
		return "Invalid request data"
	case KindAuthFailed:
		return "Authorization required"
	case KindForbidden:
		return "Access to this resource is forbidden"
	case KindNotFound:
		return "Requested resource not found"
	case KindConflict:
		return "Resource already exists"
	default:
		return "An unexpected error occurred"
	}
}

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindAuthFailed:
		return "AuthFailed"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "Internal"
	}
}

// Error is a typed failure. Message is safe to show to clients; Err is the
// underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.DefaultMessage()
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + msg
}

// Unwrap returns the wrapped cause to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error's kind.
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// ClientMessage returns the message to send to clients. Internal errors
// always yield the generic default, whatever Message holds.
func (e *Error) ClientMessage() string {
	if e.Kind == KindInternal || e.Message == "" {
		return e.Kind.DefaultMessage()
	}
	return e.Message
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// BadRequest creates a KindBadRequest error.
func BadRequest(message string) *Error { return New(KindBadRequest, message) }

// AuthFailed creates a KindAuthFailed error.
func AuthFailed(message string) *Error { return New(KindAuthFailed, message) }

// Forbidden creates a KindForbidden error.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound creates a KindNotFound error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Conflict creates a KindConflict error.
func Conflict(message string) *Error { return New(KindConflict, message) }

// Internal wraps an unclassified cause.
func Internal(err error) *Error { return Wrap(KindInternal, "", err) }

// From classifies err. An *Error anywhere in the chain is returned as is;
// anything else becomes KindInternal wrapping err. From(nil) returns nil.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// KindOf reports the kind of err as classified by From.
func KindOf(err error) Kind {
	if e := From(err); e != nil {
		return e.Kind
	}
	return KindInternal
}
