package httperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for HTTP rendering.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindPermission
	KindNotFound
)

// Error is the error type surfaced by usecases and repositories.
type Error struct {
	Kind   Kind
	Detail string
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Detail
}

// Status maps the error kind to an HTTP status code. Permission errors
// render as 404 so a caller cannot probe for resources it does not own.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindPermission, KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

// ValidationFields carries per-field detail for constraint violations.
func ValidationFields(detail string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: detail, Fields: fields}
}

func Authentication(detail string) *Error {
	return &Error{Kind: KindAuthentication, Detail: detail}
}

func Permission(detail string) *Error {
	return &Error{Kind: KindPermission, Detail: detail}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func Internal(detail string) *Error {
	return &Error{Kind: KindInternal, Detail: detail}
}

// From extracts an *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Detail: err.Error()}
}
