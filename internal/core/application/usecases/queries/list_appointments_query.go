package queries

import (
	"errors"
	"fmt"
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/ports"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

var (
	ErrListAppointmentsQueryIsNotConstructed = errors.New(
		"ListAppointmentsQuery must be created via NewListAppointmentsQuery constructor",
	)
)

// ListAppointmentsQuery pages through the calendar ordered by start.
// Every filter is optional; from/to select appointments whose occupied
// window intersects [from, to).
type ListAppointmentsQuery struct {
	filter ports.AppointmentFilter
	guard  guard.ConstructorGuard
}

// NewListAppointmentsQuery validates the paging bounds: limit 0 means
// DefaultListLimit, otherwise it must be within 1..MaxListLimit.
func NewListAppointmentsQuery(
	from, to *time.Time,
	status *appointment.Status,
	clientID *kernel.UUID,
	limit, offset int,
) (ListAppointmentsQuery, error) {
	var rangeErr, statusErr, clientErr, limitErr, offsetErr error

	if from != nil && to != nil && !to.After(*from) {
		rangeErr = errs.NewValueIsInvalidErrorWithCause("to",
			fmt.Errorf("%s is not after %s", to.Format(time.RFC3339), from.Format(time.RFC3339)))
	}
	if status != nil {
		statusErr = status.Validate()
	}
	if clientID != nil {
		clientErr = clientID.Validate()
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		offsetErr = errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	if err := errors.Join(rangeErr, statusErr, clientErr, limitErr, offsetErr); err != nil {
		return ListAppointmentsQuery{}, err
	}

	return ListAppointmentsQuery{
		filter: ports.AppointmentFilter{
			From:     from,
			To:       to,
			Status:   status,
			ClientID: clientID,
			Limit:    limit,
			Offset:   offset,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListAppointmentsQuery) Validate() error {
	return q.guard.Validate(ErrListAppointmentsQueryIsNotConstructed)
}

func (q ListAppointmentsQuery) Filter() ports.AppointmentFilter {
	return q.filter
}

// AppointmentView is the read model of an appointment.
type AppointmentView struct {
	ID              kernel.UUID
	ClientID        kernel.UUID
	OrderID         *kernel.UUID
	Title           string
	Description     string
	ScheduledStart  time.Time
	DurationMinutes int
	EndDate         *time.Time
	EffectiveEnd    time.Time
	Status          appointment.Status
	ReminderSent    bool
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewAppointmentView(a *appointment.Appointment) AppointmentView {
	slot := a.Slot()
	return AppointmentView{
		ID:              a.ID(),
		ClientID:        a.ClientID(),
		OrderID:         a.OrderID(),
		Title:           a.Title(),
		Description:     a.Description(),
		ScheduledStart:  slot.Start(),
		DurationMinutes: slot.DurationMinutes(),
		EndDate:         slot.EndDate(),
		EffectiveEnd:    slot.EffectiveEnd(),
		Status:          a.Status(),
		ReminderSent:    a.ReminderSent(),
		Notes:           a.Notes(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}
