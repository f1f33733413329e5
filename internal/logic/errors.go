package logic

import (
	"errors"
	"net/http"
)

// ErrIngestionDisabled is returned when no ingest section is configured.
var ErrIngestionDisabled = errors.New("ingestion is not configured")

// StatusError carries the HTTP status a logic error should be reported with.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string { return e.Err.Error() }

func (e *StatusError) Unwrap() error { return e.Err }

// BadRequest marks err as a client error.
func BadRequest(err error) error {
	return &StatusError{Status: http.StatusBadRequest, Err: err}
}

func unavailable(err error) error {
	return &StatusError{Status: http.StatusServiceUnavailable, Err: err}
}
