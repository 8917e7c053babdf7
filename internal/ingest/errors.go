package ingest

import (
	"fmt"
	"net/http"
)

// Error carries the pipeline's error taxonomy: an HTTP status, the exact
// user-facing message, and optionally the underlying cause. The cause is only
// ever echoed to clients when the server is configured to expose it.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func badRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func notFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func internalErr(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal server error", Err: err}
}

func uploadFailed(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Failed to upload images", Err: err}
}
