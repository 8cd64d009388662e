package schedule

import "fmt"

// ValidationError is returned when an operation is rejected before touching
// the store (bad occurrence count, skip requested on a standalone meeting).
type ValidationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "schedule: " + e.Reason
}

// NotFoundError is returned when a meeting, series, or attendee record does
// not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schedule: %s %q not found", e.Kind, e.ID)
}

// StateConflictError is returned when an operation is valid in form but the
// current state forbids it (a one-occurrence series carries no inferable
// interval).
type StateConflictError struct {
	Reason string
}

// Error implements the error interface.
func (e *StateConflictError) Error() string {
	return "schedule: " + e.Reason
}
