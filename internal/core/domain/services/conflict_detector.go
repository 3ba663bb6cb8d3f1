package services

import (
	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
)

// ConflictDetector finds the occupying appointment that blocks a requested window
// on the single shop calendar.
//
// Business rules:
//   - The requested window is half-open: [start, start+duration)
//   - A candidate occupies [start, effective end) and only while its status is occupying
//   - Back-to-back appointments never conflict
//   - excludeID removes exactly that appointment, so an appointment never blocks
//     its own reschedule
//   - When several candidates conflict, the earliest start wins and ties are
//     broken by identifier, so the answer does not depend on candidate order
//
// Example usage:
//
//	detector := services.NewConflictDetector()
//	slot, _ := appointment.NewSlot(start, 60, nil)
//	if blocking := detector.FindConflict(slot, nil, existing); blocking != nil {
//	    return &appointment.ConflictError{Conflict: blocking}
//	}
type ConflictDetector struct{}

func NewConflictDetector() ConflictDetector {
	return ConflictDetector{}
}

// FindConflict returns the blocking appointment, or nil when slot is free.
func (d ConflictDetector) FindConflict(
	slot appointment.Slot,
	excludeID *kernel.UUID,
	candidates []*appointment.Appointment,
) *appointment.Appointment {
	return d.FindConflictInWindow(slot.Proposed(), excludeID, candidates)
}

// FindConflictInWindow is FindConflict for an explicit window. It is used when an
// existing appointment starts occupying again and its effective end applies.
func (d ConflictDetector) FindConflictInWindow(
	window kernel.TimeWindow,
	excludeID *kernel.UUID,
	candidates []*appointment.Appointment,
) *appointment.Appointment {
	var best *appointment.Appointment
	for _, c := range candidates {
		if c.Validate() != nil || !c.IsOccupying() {
			continue
		}
		if excludeID != nil && c.ID().IsEqual(*excludeID) {
			continue
		}
		if !c.Slot().Occupied().Overlaps(window) {
			continue
		}
		if best == nil || earlier(c, best) {
			best = c
		}
	}
	return best
}

// Check is FindConflict expressed as an error: nil when free, otherwise a
// *appointment.ConflictError naming the blocking appointment.
func (d ConflictDetector) Check(
	slot appointment.Slot,
	excludeID *kernel.UUID,
	candidates []*appointment.Appointment,
) error {
	if blocking := d.FindConflict(slot, excludeID, candidates); blocking != nil {
		return &appointment.ConflictError{Conflict: blocking}
	}
	return nil
}

func earlier(a, b *appointment.Appointment) bool {
	if !a.Start().Equal(b.Start()) {
		return a.Start().Before(b.Start())
	}
	return a.ID().Less(b.ID())
}
