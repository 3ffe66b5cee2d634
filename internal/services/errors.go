package services

import (
	"errors"
	"fmt"
)

var (
	// ErrReportNotFound: no record with that id exists.
	ErrReportNotFound = errors.New("report not found")
	// ErrInvalidToken: the record exists but the management token does not
	// match. Kept distinct from ErrReportNotFound on purpose; the split
	// leaks record existence to a caller holding a wrong token, which is
	// the documented UX tradeoff of the manage endpoints.
	ErrInvalidToken = errors.New("invalid management token")
	// ErrInvalidReportID: the id is not a well-formed identifier. Rejected
	// before any store lookup.
	ErrInvalidReportID = errors.New("invalid report id format")
)

// ValidationError reports one malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a record-store failure. Handlers surface it as a
// generic server error; the wrapped cause only goes to the log.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
