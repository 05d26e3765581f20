package history

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("history record not found")

// StorageError represents an error from the database.
type StorageError struct {
	Driver    string // "sqlite" or "sqlite3"
	Operation string // Operation that failed ("open", "save", "list", "prune", ...)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("history storage error [driver=%s, operation=%s]: %v", e.Driver, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

func newStorageError(driver, operation string, cause error) *StorageError {
	return &StorageError{
		Driver:    driver,
		Operation: operation,
		Cause:     cause,
	}
}
