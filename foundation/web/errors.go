package web

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// Error carries an error together with the HTTP status that classifies it.
//
//	400 validation, 401 authentication, 403 authorization,
//	404 not found, 409 conflict, 503 transient store failure.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps err with a status for the client.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Status)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf returns the status attached to err. Deadline errors that were never
// classified are reported as transient.
func StatusOf(err error) int {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr.Status
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}
