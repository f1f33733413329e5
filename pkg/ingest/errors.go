package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrTransientIngestion marks a single failed attempt that may be retried.
	ErrTransientIngestion = errors.New("ingest: transient failure")
	// ErrFatalIngestion marks a cycle whose attempts were all exhausted.
	ErrFatalIngestion = errors.New("ingest: attempts exhausted")
	// ErrNoRows is returned when the extractor yields nothing usable.
	ErrNoRows = errors.New("ingest: no rows")
)

// Stage names the part of a cycle that failed.
type Stage string

const (
	StageExtract   Stage = "extract"
	StageNormalize Stage = "normalize"
	StageStore     Stage = "store"
)

// TransientError wraps the cause of one failed attempt.
type TransientError struct {
	Stage Stage
	Err   error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("ingest: %s: %v", e.Stage, e.Err)
}

func (e *TransientError) Unwrap() []error {
	return []error{ErrTransientIngestion, e.Err}
}

// FatalError is returned once every attempt of a cycle has failed.
type FatalError struct {
	Attempts int
	Last     error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("ingest: giving up after %d attempt(s): %v", e.Attempts, e.Last)
}

func (e *FatalError) Unwrap() []error {
	return []error{ErrFatalIngestion, e.Last}
}

func transient(stage Stage, err error) error {
	return &TransientError{Stage: stage, Err: err}
}
