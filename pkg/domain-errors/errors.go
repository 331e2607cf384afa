// Package domainerrors defines coded errors shared by services and transports.
//
// Services return these to describe what went wrong in domain terms; the HTTP
// layer maps the code to a status via ToHTTPStatus. Wrap keeps the cause so
// store sentinels (see pkg/platform/sentinel) still match through errors.Is.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code is a stable, machine-readable error category.
type Code string

const (
	CodeValidation          Code = "validation_error"
	CodeBadRequest          Code = "bad_request"
	CodeInvalidInput        Code = "invalid_input"
	CodeNotFound            Code = "not_found"
	CodeConstraintViolation Code = "constraint_violation"
	CodeInvariantViolation  Code = "invariant_violation"
	CodeConflict            Code = "conflict"
	CodePartialRangeFailure Code = "partial_range_failure"
	CodeUnauthorized        Code = "unauthorized"
	CodeTimeout             Code = "timeout"
	CodeInternal            Code = "internal_error"
)

// Error carries a Code, a human-readable message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error without a cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to err. A nil err yields nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether the outermost coded error in err's chain has code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Is is an alias of HasCode kept for handler readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in err's chain, or CodeInternal when
// no coded error is present.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the safe-to-display message for err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code to the HTTP status used in API responses.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest, CodeInvalidInput, CodeInvariantViolation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConstraintViolation, CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodePartialRangeFailure:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
