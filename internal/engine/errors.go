package engine

import "errors"

var (
	// ErrHabitNotFound is returned for an unknown habit id.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrAlreadyCompleted is returned when a habit was already completed
	// on the current calendar day.
	ErrAlreadyCompleted = errors.New("habit already completed today")
)

// DurabilityError wraps a persistence failure after the in-memory state has
// already been updated. The change took effect but may not survive a
// restart; callers should warn, not abort.
type DurabilityError struct {
	Op  string
	Err error
}

func (e *DurabilityError) Error() string {
	return "failed to persist " + e.Op + ": " + e.Err.Error()
}

func (e *DurabilityError) Unwrap() error { return e.Err }
