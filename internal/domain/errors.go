package domain

import "github.com/cockroachdb/errors"

// Error kinds. Package-level sentinels are marked with one of these
// (errors.Mark) so transport code can map them without knowing every package.
var (
	// ErrValidation malformed input or a date/time that cannot be booked
	ErrValidation = errors.New("validation error")

	// ErrServiceUnavailable service inactive, outside its window or not offered on the weekday
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrScheduleClosed the store has no open interval covering the requested time
	ErrScheduleClosed = errors.New("schedule closed")

	// ErrCapacityExceeded the slot is full at write time
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrConflict the request clashes with the current state of the resource
	ErrConflict = errors.New("conflict")

	// ErrNotFound referenced store, service or appointment does not exist
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied caller does not own the resource
	ErrAccessDenied = errors.New("access denied")
)

// Mark returns a sentinel error with the given message carrying kind.
func Mark(msg string, kind error) error {
	return errors.Mark(errors.New(msg), kind)
}
