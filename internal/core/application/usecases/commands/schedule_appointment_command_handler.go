package commands

import (
	"context"
	"log/slog"
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/services"
	"repairshop/internal/core/ports"
)

// ScheduleAppointmentCommandHandler books an appointment after checking the
// calendar with the conflict detector.
//
// The check and the insert are not atomic on their own; the appointments table
// carries an exclusion constraint, so a concurrent booking that slipped past
// the check is refused by the database and reported as a scheduling conflict.
type ScheduleAppointmentCommandHandler struct {
	uowFactory UoWFactory
	detector   services.ConflictDetector
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewScheduleAppointmentCommandHandler(
	uowFactory UoWFactory,
	detector services.ConflictDetector,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ScheduleAppointmentCommandHandler {
	return ScheduleAppointmentCommandHandler{
		uowFactory: uowFactory,
		detector:   detector,
		publisher:  publisher,
		logger:     logger.With("component", "schedule_appointment_handler"),
	}
}

// Handle returns an errs.ObjectNotFoundError when the client or the linked
// order does not exist, and an *appointment.ConflictError when the window is taken.
func (h ScheduleAppointmentCommandHandler) Handle(
	ctx context.Context,
	cmd ScheduleAppointmentCommand,
) (*appointment.Appointment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a, err := appointment.NewAppointment(cmd.AppointmentID(), cmd.ClientID(), cmd.OrderID(),
		cmd.Title(), cmd.Description(), cmd.Slot(), cmd.Notes(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.ClientRepository().Get(ctx, cmd.ClientID()); err != nil {
		return nil, err
	}

	if orderID := cmd.OrderID(); orderID != nil {
		if _, err = uow.OrderRepository().Get(ctx, *orderID); err != nil {
			return nil, err
		}
	}

	repo := uow.AppointmentRepository()
	candidates, err := repo.FindOccupyingOverlapping(ctx, cmd.Slot().Proposed())
	if err != nil {
		return nil, err
	}

	if err = h.detector.Check(cmd.Slot(), nil, candidates); err != nil {
		h.logger.InfoContext(ctx, "appointment request conflicts", "error", err)
		return nil, err
	}

	if err = repo.Add(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "appointment scheduled",
		"appointment_id", a.ID().String(), "start", a.Start().Format(time.RFC3339))
	publish(ctx, h.publisher, h.logger, appointmentEvent(ports.EventAppointmentScheduled, a, now))

	return a, nil
}

func appointmentEvent(eventType ports.EventType, a *appointment.Appointment, at time.Time) ports.Event {
	data := map[string]any{
		"client_id":        a.ClientID().String(),
		"title":            a.Title(),
		"scheduled_start":  a.Start().Format(time.RFC3339),
		"duration_minutes": a.DurationMinutes(),
		"status":           a.Status().String(),
	}
	if orderID := a.OrderID(); orderID != nil {
		data["order_id"] = orderID.String()
	}
	return ports.NewEvent(eventType, a.ID(), at, data)
}
