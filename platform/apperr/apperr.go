// Package apperr holds the error type services return when the failure has a
// caller-facing meaning. httpkit.HandleError turns the Kind into a status code
// and the Message into the JSON "error" field, so Message is always safe to
// show to a website visitor or the broker.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error for the HTTP layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindForbidden
	KindUnauthorized
	KindInternal
	// KindUnavailable marks a failed or unconfigured dependency such as the
	// language model or object storage. The message is user-facing fallback copy.
	KindUnavailable
)

var statusByKind = map[Kind]int{
	KindNotFound:     http.StatusNotFound,
	KindValidation:   http.StatusBadRequest,
	KindForbidden:    http.StatusForbidden,
	KindUnauthorized: http.StatusUnauthorized,
	KindInternal:     http.StatusInternalServerError,
	KindUnavailable:  http.StatusInternalServerError,
}

// Error is a classified failure with a visitor-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	Details any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the kind to a response code. Unknown kinds are client errors.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusBadRequest
}

// WithDetails attaches extra response data, such as a validation reason.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// Wrap classifies err under kind with a safe message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error   { return &Error{Kind: KindNotFound, Message: message} }
func Validation(message string) *Error { return &Error{Kind: KindValidation, Message: message} }
func Internal(message string) *Error   { return &Error{Kind: KindInternal, Message: message} }

// Unavailable reports a dependency failure; message is what the visitor sees.
func Unavailable(message string, err error) *Error {
	return Wrap(KindUnavailable, message, err)
}

// GetKind returns the Kind of the first *Error in err's chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
