package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure. Transport and Rejected come from the remote
// API, Validation from form input.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindRejected   Kind = "rejected"
	KindValidation Kind = "validation"
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindForbidden, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

// Conflict reports a workflow transition that is not valid from the
// current state. Nothing was written.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

// Transport wraps a network failure talking to the remote API.
func Transport(op string, err error) *AppError {
	return New(http.StatusBadGateway, KindTransport, op, err)
}

// Rejected wraps an envelope with status=false or an unusable payload.
func Rejected(op string, err error) *AppError {
	return New(http.StatusBadGateway, KindRejected, op, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf returns the kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsRemote reports whether err is a transport or API-reported failure.
func IsRemote(err error) bool {
	k := KindOf(err)
	return k == KindTransport || k == KindRejected
}
