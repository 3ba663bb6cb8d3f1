package queries

import (
	"errors"
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/guard"
)

var (
	ErrCheckAvailabilityQueryIsNotConstructed = errors.New(
		"CheckAvailabilityQuery must be created via NewCheckAvailabilityQuery constructor",
	)
)

// CheckAvailabilityQuery asks whether [start, start+duration) is free.
// A zero duration means appointment.DefaultDurationMinutes. excludeID lets an
// appointment being edited ignore its own window.
type CheckAvailabilityQuery struct {
	slot      appointment.Slot
	excludeID *kernel.UUID
	guard     guard.ConstructorGuard
}

func NewCheckAvailabilityQuery(
	start time.Time,
	durationMinutes int,
	excludeID *kernel.UUID,
) (CheckAvailabilityQuery, error) {
	if durationMinutes == 0 {
		durationMinutes = appointment.DefaultDurationMinutes
	}

	slot, slotErr := appointment.NewSlot(start, durationMinutes, nil)

	var excludeErr error
	if excludeID != nil {
		excludeErr = excludeID.Validate()
	}

	if err := errors.Join(slotErr, excludeErr); err != nil {
		return CheckAvailabilityQuery{}, err
	}

	return CheckAvailabilityQuery{slot: slot, excludeID: excludeID, guard: guard.NewConstructorGuard()}, nil
}

func (q CheckAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckAvailabilityQueryIsNotConstructed)
}

func (q CheckAvailabilityQuery) Slot() appointment.Slot {
	return q.slot
}

func (q CheckAvailabilityQuery) ExcludeID() *kernel.UUID {
	return q.excludeID
}

// ConflictView identifies the appointment that blocks a window.
type ConflictView struct {
	ID              kernel.UUID
	Title           string
	Start           time.Time
	DurationMinutes int
}

func NewConflictView(a *appointment.Appointment) ConflictView {
	return ConflictView{
		ID:              a.ID(),
		Title:           a.Title(),
		Start:           a.Start(),
		DurationMinutes: a.DurationMinutes(),
	}
}

// AvailabilityView is the answer to CheckAvailabilityQuery. Conflict is nil
// exactly when Available is true.
type AvailabilityView struct {
	Available bool
	Conflict  *ConflictView
}
