package ports

import (
	"context"
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
)

// AppointmentFilter narrows List. Nil fields do not filter.
type AppointmentFilter struct {
	From     *time.Time
	To       *time.Time
	Status   *appointment.Status
	ClientID *kernel.UUID
	Limit    int
	Offset   int
}

// AppointmentRepository defines the persistence contract for appointment aggregates.
type AppointmentRepository interface {
	// Add inserts a new appointment. When the storage layer refuses the row
	// because it overlaps an occupying appointment, the error wraps
	// appointment.ErrSchedulingConflict.
	Add(ctx context.Context, aggregate *appointment.Appointment) error

	// Update writes an existing appointment; overlap refusals are reported as in Add.
	Update(ctx context.Context, aggregate *appointment.Appointment) error

	// Get returns an errs.ObjectNotFoundError for unknown identifiers.
	Get(ctx context.Context, id kernel.UUID) (*appointment.Appointment, error)

	// FindOccupyingOverlapping returns the occupying appointments whose
	// [start, effective end) intersects window, ordered by start then id.
	FindOccupyingOverlapping(ctx context.Context, window kernel.TimeWindow) ([]*appointment.Appointment, error)

	// FindDueForReminder returns occupying appointments without a reminder that
	// start in [now, now+lead).
	FindDueForReminder(ctx context.Context, now time.Time, lead time.Duration) ([]*appointment.Appointment, error)

	// List returns appointments matching filter ordered by start ascending.
	List(ctx context.Context, filter AppointmentFilter) ([]*appointment.Appointment, error)
}
