// Package faults defines the error taxonomy shared by the allocation,
// workflow, and coordinator layers. Every error here is recoverable and
// scoped to a single operation; callers are expected to match with
// errors.Is and report the condition back to the actor.
package faults

import "errors"

var (
	// ErrForbidden means the acting role or capability set does not permit
	// the operation. Distinct from ErrInvalidTransition, which means the
	// requested state change is structurally illegal for any actor.
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Allocation-specific conditions.
	ErrAlreadySignedUp = errors.New("already signed up")
	ErrAlreadyClaimed  = errors.New("donation already claimed")
	ErrNotSignedUp     = errors.New("not signed up")
	ErrNotAvailable    = errors.New("donation not available")
	ErrFull            = errors.New("opportunity is full")
	ErrNotOpen         = errors.New("opportunity not open")
	ErrNotOwner        = errors.New("not the owning restaurant")

	// ErrConflict means an optimistic update lost the race and no retries
	// remain. It is never swallowed silently.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means the caller's input fails validation before
	// any state is touched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoFocusAreas means a reviewer has no capability tags configured.
	// Surfaced as its own condition so callers can distinguish it from an
	// empty result set.
	ErrNoFocusAreas = errors.New("no focus areas configured")
)
