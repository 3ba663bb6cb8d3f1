package appointment

import (
	"errors"
	"fmt"
	"time"
)

// ErrSchedulingConflict is the sentinel wrapped by ConflictError.
var ErrSchedulingConflict = errors.New("scheduling conflict")

// ConflictError reports the occupying appointment that blocks a requested window.
// Conflict is nil when the storage layer rejected the write without telling
// which row collided.
type ConflictError struct {
	Conflict *Appointment
}

func (e *ConflictError) Error() string {
	if e.Conflict == nil {
		return fmt.Sprintf("%s: the requested window overlaps an existing appointment", ErrSchedulingConflict)
	}
	return fmt.Sprintf("%s: overlaps appointment %s %q at %s (%d min)",
		ErrSchedulingConflict,
		e.Conflict.ID(),
		e.Conflict.Title(),
		e.Conflict.Start().Format(time.RFC3339),
		e.Conflict.DurationMinutes(),
	)
}

func (e *ConflictError) Unwrap() error {
	return ErrSchedulingConflict
}
