package commands

import (
	"errors"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/guard"
)

var ErrChangeAppointmentStatusCommandIsNotConstructed = errors.New(
	"ChangeAppointmentStatusCommand must be created via NewChangeAppointmentStatusCommand constructor",
)

type ChangeAppointmentStatusCommand struct { //nolint:recvcheck //using for validation
	appointmentID kernel.UUID
	status        appointment.Status

	guard guard.ConstructorGuard
}

func NewChangeAppointmentStatusCommand(
	appointmentID kernel.UUID,
	status appointment.Status,
) (ChangeAppointmentStatusCommand, error) {
	if err := errors.Join(appointmentID.Validate(), status.Validate()); err != nil {
		return ChangeAppointmentStatusCommand{}, err
	}

	return ChangeAppointmentStatusCommand{
		appointmentID: appointmentID,
		status:        status,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeAppointmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeAppointmentStatusCommandIsNotConstructed)
}

func (c ChangeAppointmentStatusCommand) AppointmentID() kernel.UUID {
	return c.appointmentID
}

func (c ChangeAppointmentStatusCommand) Status() appointment.Status {
	return c.status
}
