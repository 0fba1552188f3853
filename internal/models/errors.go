package models

import "fmt"

// AuthError means the operation required an authenticated caller and none was
// present (or the caller lacked the required role).
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "authentication required"
	}
	return e.Reason
}

// NotFoundError means the referenced row does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidTransitionError means a state-machine precondition was not met, e.g.
// approving an event that is not pending_review.
type InvalidTransitionError struct {
	From EventStatus
	To   EventStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid event transition from %q to %q", e.From, e.To)
}

// ValidationError means the caller supplied a payload that failed boundary
// validation before any store call was made.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Detail
}

// RepositoryError wraps any failure of the underlying store call (network,
// permission, constraint). Callers surface it as a generic load/save failure.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s failed: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}
