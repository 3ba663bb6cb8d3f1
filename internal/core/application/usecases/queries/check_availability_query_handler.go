package queries

import (
	"context"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/services"
)

// OccupiedWindowReader loads the occupying appointments intersecting a window.
// ports.AppointmentRepository satisfies it.
type OccupiedWindowReader interface {
	FindOccupyingOverlapping(ctx context.Context, window kernel.TimeWindow) ([]*appointment.Appointment, error)
}

// CheckAvailabilityQueryHandler answers availability with the same detector the
// scheduling command uses, so both always agree.
type CheckAvailabilityQueryHandler struct {
	reader   OccupiedWindowReader
	detector services.ConflictDetector
}

func NewCheckAvailabilityQueryHandler(
	reader OccupiedWindowReader,
	detector services.ConflictDetector,
) CheckAvailabilityQueryHandler {
	return CheckAvailabilityQueryHandler{reader: reader, detector: detector}
}

func (h CheckAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckAvailabilityQuery,
) (AvailabilityView, error) {
	if err := query.Validate(); err != nil {
		return AvailabilityView{}, err
	}

	candidates, err := h.reader.FindOccupyingOverlapping(ctx, query.Slot().Proposed())
	if err != nil {
		return AvailabilityView{}, err
	}

	conflict := h.detector.FindConflict(query.Slot(), query.ExcludeID(), candidates)
	if conflict == nil {
		return AvailabilityView{Available: true}, nil
	}

	view := NewConflictView(conflict)
	return AvailabilityView{Available: false, Conflict: &view}, nil
}
