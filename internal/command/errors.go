package command

import (
	"errors"
	"fmt"
)

// Provisioning error kinds. Every kind is terminal for the invocation.
var (
	ErrMethodNotAllowed   = errors.New("method not allowed")
	ErrInvalidPayload     = errors.New("invalid signup payload")
	ErrUserWriteFailed    = errors.New("failed to create user record")
	ErrProfileWriteFailed = errors.New("failed to create profile record")
)

// CompensationOutcome records what happened to the user row after a failed profile insert.
type CompensationOutcome string

const (
	CompensationNotAttempted CompensationOutcome = "not_attempted"
	CompensationDisabled     CompensationOutcome = "disabled"
	CompensationCleanedUp    CompensationOutcome = "cleaned_up"
	CompensationFailed       CompensationOutcome = "failed"
)

// ProvisionError is returned for store failures. It carries the primary failure and,
// for profile failures, the outcome of the compensating delete, which never replaces
// the primary error.
type ProvisionError struct {
	Kind            error
	Cause           error
	Compensation    CompensationOutcome
	CompensationErr error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

func (e *ProvisionError) Is(target error) bool {
	return target == e.Kind
}

func (e *ProvisionError) Unwrap() error {
	return e.Cause
}

// OrphanMayRemain reports whether a user row without a profile may still exist.
func (e *ProvisionError) OrphanMayRemain() bool {
	return errors.Is(e.Kind, ErrProfileWriteFailed) && e.Compensation != CompensationCleanedUp
}
