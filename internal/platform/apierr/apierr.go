package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status and machine-readable code a failure should be
// rendered with. Err holds the client-facing message; internal causes stay
// in Cause and are only ever logged.
type Error struct {
	Status int
	Code   string
	Err    error
	Cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Err
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code string, msg string) *Error {
	return New(http.StatusBadRequest, code, errors.New(msg))
}

// WithCause attaches an internal cause without changing the client message.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// StatusOf reports the status carried by err, or 500 for untyped errors.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}
