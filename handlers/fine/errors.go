package fine

import (
	"errors"
	"fmt"
)

var (
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrInvalidInput        = errors.New("invalid fine input")
	ErrRateLimited         = errors.New("officer is issuing fines too quickly")
)

// PlatformError is a failed call to the chat platform during a workflow step.
type PlatformError struct {
	Stage string
	Err   error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform operation failed at %s: %v", e.Stage, e.Err)
}

func (e *PlatformError) Unwrap() error { return e.Err }

// PersistenceError is a failed read or write of the fines file.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("fine record persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
