package commands

import (
	"context"
	"log/slog"

	"repairshop/internal/core/ports"
)

// SendAppointmentRemindersCommandHandler is run periodically by the reminder
// job. All flags of one run are written in a single transaction.
type SendAppointmentRemindersCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewSendAppointmentRemindersCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) SendAppointmentRemindersCommandHandler {
	return SendAppointmentRemindersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "appointment_reminders_handler"),
	}
}

// Handle returns the number of appointments reminded.
func (h SendAppointmentRemindersCommandHandler) Handle(
	ctx context.Context,
	cmd SendAppointmentRemindersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AppointmentRepository()
	due, err := repo.FindDueForReminder(ctx, cmd.Now(), cmd.Lead())
	if err != nil {
		return 0, err
	}

	events := make([]ports.Event, 0, len(due))
	for _, a := range due {
		if !a.NeedsReminder(cmd.Now(), cmd.Lead()) {
			continue
		}
		if err = a.MarkReminderSent(cmd.Now()); err != nil {
			return 0, err
		}
		if err = repo.Update(ctx, a); err != nil {
			return 0, err
		}
		events = append(events, appointmentEvent(ports.EventAppointmentReminder, a, cmd.Now()))
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	publish(ctx, h.publisher, h.logger, events...)

	return len(events), nil
}
