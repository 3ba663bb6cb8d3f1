package commands

import (
	"context"
	"log/slog"
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/services"
	"repairshop/internal/core/ports"
)

// RescheduleAppointmentCommandHandler moves an appointment. The appointment is
// excluded from its own conflict check, so shifting it over its old window is
// allowed. Non-occupying appointments move without a calendar check.
type RescheduleAppointmentCommandHandler struct {
	uowFactory UoWFactory
	detector   services.ConflictDetector
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewRescheduleAppointmentCommandHandler(
	uowFactory UoWFactory,
	detector services.ConflictDetector,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RescheduleAppointmentCommandHandler {
	return RescheduleAppointmentCommandHandler{
		uowFactory: uowFactory,
		detector:   detector,
		publisher:  publisher,
		logger:     logger.With("component", "reschedule_appointment_handler"),
	}
}

func (h RescheduleAppointmentCommandHandler) Handle(
	ctx context.Context,
	cmd RescheduleAppointmentCommand,
) (*appointment.Appointment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AppointmentRepository()
	a, err := repo.Get(ctx, cmd.AppointmentID())
	if err != nil {
		return nil, err
	}

	duration := cmd.DurationMinutes()
	if duration == 0 {
		duration = a.DurationMinutes()
	}

	slot, err := appointment.NewSlot(cmd.Start(), duration, cmd.EndDate())
	if err != nil {
		return nil, err
	}

	if a.IsOccupying() {
		candidates, findErr := repo.FindOccupyingOverlapping(ctx, slot.Proposed())
		if findErr != nil {
			return nil, findErr
		}

		id := a.ID()
		if err = h.detector.Check(slot, &id, candidates); err != nil {
			h.logger.InfoContext(ctx, "reschedule conflicts", "appointment_id", id.String(), "error", err)
			return nil, err
		}
	}

	now := time.Now().UTC()
	if err = a.Reschedule(slot, now); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, appointmentEvent(ports.EventAppointmentRescheduled, a, now))

	return a, nil
}
