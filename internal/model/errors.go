package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies terminal task failures
type ErrorKind string

const (
	// ErrSourceUnavailable means the video could not be resolved to an audio stream
	ErrSourceUnavailable ErrorKind = "SourceUnavailable"

	// ErrTransferInterrupted means the network transfer broke mid-stream
	ErrTransferInterrupted ErrorKind = "TransferInterrupted"

	// ErrEncodingFailed means the encoder rejected the audio stream
	ErrEncodingFailed ErrorKind = "EncodingFailed"

	// ErrWriteFailed means the output file could not be written
	ErrWriteFailed ErrorKind = "WriteFailed"

	// ErrDestinationBusy means another active task already owns the destination path
	ErrDestinationBusy ErrorKind = "DestinationBusy"

	// ErrAlreadyTerminal means an operation was invoked on a finished task
	ErrAlreadyTerminal ErrorKind = "AlreadyTerminal"
)

// TaskError couples an error kind with a human-readable detail and an
// optional underlying cause.
type TaskError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

// NewTaskError creates a TaskError with the given kind, detail, and cause
func NewTaskError(kind ErrorKind, detail string, err error) *TaskError {
	return &TaskError{Kind: kind, Detail: detail, Err: err}
}

// Error returns the formatted error message
func (e *TaskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap returns the underlying cause
func (e *TaskError) Unwrap() error {
	return e.Err
}

// KindOf extracts the ErrorKind from an error chain. The second return value
// is false if no TaskError is present in the chain.
func KindOf(err error) (ErrorKind, bool) {
	var te *TaskError
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return "", false
}
