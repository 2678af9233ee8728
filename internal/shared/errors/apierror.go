// Package errors renders API failures as {"error": "<message>"} bodies.
package errors

import (
	"net/http"
)

// APIError is an HTTP status paired with the message sent to the client.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

// Error implements the error interface.
func (e APIError) Error() string {
	return e.Message
}

// WithMessage returns a copy carrying the given message.
func (e APIError) WithMessage(message string) APIError {
	e.Message = message
	return e
}

// Pre-defined templates for common scenarios.
var (
	ErrBadRequest = APIError{Status: http.StatusBadRequest, Message: "Bad request"}

	// ErrNotFound is also the body of a lookup that matched nothing.
	ErrNotFound = APIError{Status: http.StatusNotFound, Message: "Not found"}

	ErrConflict = APIError{Status: http.StatusConflict, Message: "Conflict"}

	ErrTooManyRequests = APIError{Status: http.StatusTooManyRequests, Message: "rate limit exceeded"}

	// ErrInternal hides the cause of unexpected failures from clients.
	ErrInternal = APIError{Status: http.StatusInternalServerError, Message: "Internal server error"}
)

// BadRequest builds a 400 carrying message.
func BadRequest(message string) APIError {
	return ErrBadRequest.WithMessage(message)
}

// NotFound builds a 404 carrying message.
func NotFound(message string) APIError {
	return ErrNotFound.WithMessage(message)
}

// Conflict builds a 409 carrying message.
func Conflict(message string) APIError {
	return ErrConflict.WithMessage(message)
}
