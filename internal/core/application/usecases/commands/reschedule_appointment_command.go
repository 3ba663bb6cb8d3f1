package commands

import (
	"errors"
	"time"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

var ErrRescheduleAppointmentCommandIsNotConstructed = errors.New(
	"RescheduleAppointmentCommand must be created via NewRescheduleAppointmentCommand constructor",
)

// RescheduleAppointmentCommand moves an appointment to a new start. A zero
// duration keeps the current one; a nil end date drops any explicit end.
type RescheduleAppointmentCommand struct { //nolint:recvcheck //using for validation
	appointmentID   kernel.UUID
	start           time.Time
	durationMinutes int
	endDate         *time.Time

	guard guard.ConstructorGuard
}

func NewRescheduleAppointmentCommand(
	appointmentID kernel.UUID,
	start time.Time,
	durationMinutes int,
	endDate *time.Time,
) (RescheduleAppointmentCommand, error) {
	var startErr, durationErr error
	if start.IsZero() {
		startErr = errs.NewValueIsRequiredError("scheduled_start")
	}
	if durationMinutes < 0 {
		durationErr = errs.NewValueIsInvalidError("duration_minutes")
	}

	if err := errors.Join(appointmentID.Validate(), startErr, durationErr); err != nil {
		return RescheduleAppointmentCommand{}, err
	}

	return RescheduleAppointmentCommand{
		appointmentID:   appointmentID,
		start:           start,
		durationMinutes: durationMinutes,
		endDate:         endDate,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c RescheduleAppointmentCommand) Validate() error {
	return c.guard.Validate(ErrRescheduleAppointmentCommandIsNotConstructed)
}

func (c RescheduleAppointmentCommand) AppointmentID() kernel.UUID {
	return c.appointmentID
}

func (c RescheduleAppointmentCommand) Start() time.Time {
	return c.start
}

// DurationMinutes is zero when the current duration is kept.
func (c RescheduleAppointmentCommand) DurationMinutes() int {
	return c.durationMinutes
}

func (c RescheduleAppointmentCommand) EndDate() *time.Time {
	return c.endDate
}
