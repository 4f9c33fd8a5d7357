package errors

import (
	"net/http"
)

// APIError is the error type handlers attach to the gin context. The
// Message is what the caller sees; Internal carries the underlying cause
// for logging and is never serialized into the response.
type APIError struct {
	Status   int    `json:"-"`
	Message  string `json:"error"`
	Internal error  `json:"-"`
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the original error
func (e *APIError) Unwrap() error {
	return e.Internal
}

func New(status int, message string, internal error) *APIError {
	return &APIError{
		Status:   status,
		Message:  message,
		Internal: internal,
	}
}

func BadRequest(message string, internal error) *APIError {
	return New(http.StatusBadRequest, message, internal)
}

func Unauthorized(message string, internal error) *APIError {
	return New(http.StatusUnauthorized, message, internal)
}

// NotFound covers both a genuinely missing resource and one owned by a
// different user. Callers must not be able to tell the two apart.
func NotFound(message string, internal error) *APIError {
	return New(http.StatusNotFound, message, internal)
}

func UnprocessableEntity(message string, internal error) *APIError {
	return New(http.StatusUnprocessableEntity, message, internal)
}

// Internal hides the underlying store or system error behind a generic
// message. The cause stays attached for the error-handler log line.
func Internal(err error) *APIError {
	return New(http.StatusInternalServerError, "Internal server error", err)
}
