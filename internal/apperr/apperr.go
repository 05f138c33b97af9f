// Package apperr defines the structured error type shared by services,
// handlers, and the HTTP error middleware.
//
// An AppError carries everything the error middleware needs to render the
// failure envelope: the HTTP status code, the derived status class ("fail"
// for 4xx, "error" for 5xx), and whether the error is operational, meaning
// an anticipated failure whose message is safe to show to clients. Anything
// that is not an operational AppError is treated as a programming fault and
// surfaced only as a generic 500 in production.
//
// Conventions:
//   - Services construct operational errors at the point the failure is
//     detected (validation, missing data, upstream unavailable).
//   - Handlers never build failure responses themselves; they forward the
//     error to the middleware via gin's c.Error().
//   - Wrapped causes are for server-side logs only and never reach clients.
package apperr

import (
	"errors"
	"net/http"
)

// Status classes of the failure envelope. StatusFail maps to client errors
// (4xx), StatusError to server errors (5xx).
const (
	StatusFail  = "fail"
	StatusError = "error"
)

// AppError is the canonical application error.
// The JSON tags only matter for the development error echo; production
// responses never serialize the error itself.
type AppError struct {
	// Message is a human-readable description, safe for clients when the
	// error is operational.
	Message string `json:"message"`
	// Code is the HTTP status code to respond with (400–599).
	Code int `json:"statusCode"`
	// Operational marks anticipated failures. Non-operational errors are
	// forced to 500 with a generic message in production.
	Operational bool `json:"isOperational"`
	// Err is the underlying cause, used for logging only.
	Err error `json:"-"`
}

// New creates an operational AppError with the given client-safe message and
// HTTP status code. Codes outside 400–599 are coerced to 500.
func New(message string, code int) *AppError {
	if code < 400 || code > 599 {
		code = http.StatusInternalServerError
	}
	return &AppError{Message: message, Code: code, Operational: true}
}

// Wrap is New with an underlying cause attached for logging.
func Wrap(message string, code int, err error) *AppError {
	e := New(message, code)
	e.Err = err
	return e
}

// Internal creates a non-operational AppError for unexpected faults. Its
// message is never shown to clients outside development mode.
func Internal(err error) *AppError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{Message: msg, Code: http.StatusInternalServerError, Err: err}
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() error { return e.Err }

// Status returns the envelope status class derived from the HTTP code:
// "fail" for 4xx, "error" otherwise.
func (e *AppError) Status() string {
	if e.Code >= 400 && e.Code < 500 {
		return StatusFail
	}
	return StatusError
}

// From converts any error into an AppError. An *AppError passes through
// unchanged; everything else becomes a non-operational internal error.
func From(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// Convenience constructors for the error taxonomy used across the API.

// BadRequest returns an operational 400.
func BadRequest(message string) *AppError { return New(message, http.StatusBadRequest) }

// NotFound returns an operational 404.
func NotFound(message string) *AppError { return New(message, http.StatusNotFound) }

// Unavailable returns an operational 503, used when an upstream dependency
// cannot be reached.
func Unavailable(message string, err error) *AppError {
	return Wrap(message, http.StatusServiceUnavailable, err)
}
