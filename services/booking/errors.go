package booking

import "fmt"

// NotFoundError signals a referenced booking or worker document is absent.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError signals the slot-booking step failed because the worker
// already holds an overlapping reservation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// PolicyViolationError signals a lifecycle action requested outside the
// allowed policy window or state.
type PolicyViolationError struct {
	Reason string
}

func (e *PolicyViolationError) Error() string {
	return e.Reason
}
