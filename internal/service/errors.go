package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"problem-solver/internal/repository"
)

// Common service errors
var (
	// ErrNotFound is returned when a submission or its dependent record does not exist
	ErrNotFound = repository.ErrNotFound
	// ErrPrecondition is returned when an operation is not allowed in the current state
	ErrPrecondition = errors.New("precondition failed")
	// ErrStatusConflict is returned when the status changed underneath an operation
	ErrStatusConflict = errors.New("submission status changed concurrently")
	// ErrNotPending is returned by background generation for submissions that already left "new"
	ErrNotPending = errors.New("submission is no longer pending generation")
	// ErrInvalidCredentials is returned on failed admin login
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession is returned for unknown, revoked or expired admin tokens
	ErrInvalidSession = errors.New("invalid or expired session")
)

// ValidationError carries one message per offending field
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// newValidationError builds a ValidationError for a single field
func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// StorageError wraps a persistence failure
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ExternalServiceError wraps a failure of the inference or mail collaborator
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s service failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// SchemaParseError reports model output that does not match the report structure
type SchemaParseError struct {
	Err error
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("report output does not match schema: %v", e.Err)
}

func (e *SchemaParseError) Unwrap() error { return e.Err }

// storageErr keeps ErrNotFound recognizable and wraps everything else
func storageErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return &StorageError{Op: op, Err: err}
}
