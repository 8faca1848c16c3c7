package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownIdentifier is returned when a table or column name is outside
// the permitted set. Identifiers are checked before any query is assembled.
var ErrUnknownIdentifier = errors.New("unknown table or column identifier")

// ConstraintError reports a uniqueness or foreign-key violation.
type ConstraintError struct {
	Op  string
	Err error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: constraint violation: %v", e.Op, e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// StorageError reports any other store-level failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage error: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// classify maps a driver error to the typed taxonomy. The sqlite driver
// reports all constraint failures with a "constraint failed" message.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "constraint failed") {
		return &ConstraintError{Op: op, Err: err}
	}
	return &StorageError{Op: op, Err: err}
}
