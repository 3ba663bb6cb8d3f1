package commands

import (
	"context"
	"log/slog"
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/services"
	"repairshop/internal/core/ports"
)

// ChangeAppointmentStatusCommandHandler sets an appointment's status. When a
// cancelled or no-show appointment becomes occupying again, its whole window
// (up to the effective end) is checked against the calendar first.
type ChangeAppointmentStatusCommandHandler struct {
	uowFactory UoWFactory
	detector   services.ConflictDetector
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewChangeAppointmentStatusCommandHandler(
	uowFactory UoWFactory,
	detector services.ConflictDetector,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ChangeAppointmentStatusCommandHandler {
	return ChangeAppointmentStatusCommandHandler{
		uowFactory: uowFactory,
		detector:   detector,
		publisher:  publisher,
		logger:     logger.With("component", "change_appointment_status_handler"),
	}
}

func (h ChangeAppointmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeAppointmentStatusCommand,
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

	now := time.Now().UTC()
	reoccupies, err := a.ChangeStatus(cmd.Status(), now)
	if err != nil {
		return nil, err
	}

	if reoccupies {
		window := a.Slot().Occupied()
		candidates, findErr := repo.FindOccupyingOverlapping(ctx, window)
		if findErr != nil {
			return nil, findErr
		}

		id := a.ID()
		if blocking := h.detector.FindConflictInWindow(window, &id, candidates); blocking != nil {
			return nil, &appointment.ConflictError{Conflict: blocking}
		}
	}

	if err = repo.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, appointmentEvent(ports.EventAppointmentStatusChanged, a, now))

	return a, nil
}
