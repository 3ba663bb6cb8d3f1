package commands

import (
	"errors"
	"fmt"
	"time"

	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

var ErrSendAppointmentRemindersCommandIsNotConstructed = errors.New(
	"SendAppointmentRemindersCommand must be created via NewSendAppointmentRemindersCommand constructor",
)

// SendAppointmentRemindersCommand marks every occupying appointment that starts
// within lead of now as reminded and emits one reminder event per appointment.
//
// Example:
//
//	cmd, _ := NewSendAppointmentRemindersCommand(time.Now(), 24*time.Hour)
//	sent, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    logger.Error("reminders failed", "error", err)
//	}
type SendAppointmentRemindersCommand struct { //nolint:recvcheck //using for validation
	now  time.Time
	lead time.Duration

	guard guard.ConstructorGuard
}

func NewSendAppointmentRemindersCommand(now time.Time, lead time.Duration) (SendAppointmentRemindersCommand, error) {
	if now.IsZero() {
		return SendAppointmentRemindersCommand{}, errs.NewValueIsRequiredError("now")
	}
	if lead <= 0 {
		return SendAppointmentRemindersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"lead", fmt.Errorf("%s is not positive", lead))
	}

	return SendAppointmentRemindersCommand{
		now:   now,
		lead:  lead,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c SendAppointmentRemindersCommand) Validate() error {
	return c.guard.Validate(ErrSendAppointmentRemindersCommandIsNotConstructed)
}

func (c SendAppointmentRemindersCommand) Now() time.Time {
	return c.now
}

func (c SendAppointmentRemindersCommand) Lead() time.Duration {
	return c.lead
}
