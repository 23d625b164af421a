package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps all of them to
// HTTP 400 because they describe a bad reference in the request body.
var (
	// ErrSwimlaneMissing is returned when a project is created in a swimlane
	// that does not exist.
	ErrSwimlaneMissing = errors.New("swimlane does not exist")

	// ErrProjectMissing is returned when a task is created in a project that
	// does not exist.
	ErrProjectMissing = errors.New("project does not exist")

	// ErrParentNotFound is returned when a task names a parent that does not exist.
	ErrParentNotFound = errors.New("parent task does not exist")

	// ErrParentInOtherProject is returned when a task names a parent from a
	// different project.
	ErrParentInOtherProject = errors.New("parent task belongs to another project")

	// ErrNestingTooDeep is returned when a subtask would get subtasks of its own.
	ErrNestingTooDeep = errors.New("subtasks cannot have subtasks")
)

// ServiceError is a custom error type for service errors. It records which
// operation failed and wraps the underlying cause.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
