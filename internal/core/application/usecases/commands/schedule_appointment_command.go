package commands

import (
	"errors"
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

var ErrScheduleAppointmentCommandIsNotConstructed = errors.New(
	"ScheduleAppointmentCommand must be created via NewScheduleAppointmentCommand constructor",
)

// ScheduleAppointmentCommand books a new appointment. A zero duration means
// appointment.DefaultDurationMinutes.
//
// Example:
//
//	cmd, err := NewScheduleAppointmentCommand(kernel.NewUUID(), clientID, nil,
//	    "Diagnosis drop-off", "", start, 30, nil, "")
//	if err != nil {
//	    return err // duration out of range, end before start, ...
//	}
//	booked, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, appointment.ErrSchedulingConflict) {
//	    // the window is taken
//	}
type ScheduleAppointmentCommand struct { //nolint:recvcheck //using for validation
	appointmentID kernel.UUID
	clientID      kernel.UUID
	orderID       *kernel.UUID
	title         string
	description   string
	slot          appointment.Slot
	notes         string

	guard guard.ConstructorGuard
}

func NewScheduleAppointmentCommand(
	appointmentID kernel.UUID,
	clientID kernel.UUID,
	orderID *kernel.UUID,
	title string,
	description string,
	start time.Time,
	durationMinutes int,
	endDate *time.Time,
	notes string,
) (ScheduleAppointmentCommand, error) {
	if durationMinutes == 0 {
		durationMinutes = appointment.DefaultDurationMinutes
	}

	var clientErr, orderErr error
	if err := clientID.Validate(); err != nil {
		clientErr = errs.NewValueIsRequiredErrorWithCause("client_id", err)
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			orderErr = errs.NewValueIsInvalidErrorWithCause("order_id", err)
		}
	}

	slot, slotErr := appointment.NewSlot(start, durationMinutes, endDate)

	if err := errors.Join(appointmentID.Validate(), clientErr, orderErr, slotErr); err != nil {
		return ScheduleAppointmentCommand{}, err
	}

	return ScheduleAppointmentCommand{
		appointmentID: appointmentID,
		clientID:      clientID,
		orderID:       orderID,
		title:         title,
		description:   description,
		slot:          slot,
		notes:         notes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ScheduleAppointmentCommand) Validate() error {
	return c.guard.Validate(ErrScheduleAppointmentCommandIsNotConstructed)
}

func (c ScheduleAppointmentCommand) AppointmentID() kernel.UUID {
	return c.appointmentID
}

func (c ScheduleAppointmentCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c ScheduleAppointmentCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c ScheduleAppointmentCommand) Title() string {
	return c.title
}

func (c ScheduleAppointmentCommand) Description() string {
	return c.description
}

func (c ScheduleAppointmentCommand) Slot() appointment.Slot {
	return c.slot
}

func (c ScheduleAppointmentCommand) Notes() string {
	return c.notes
}
