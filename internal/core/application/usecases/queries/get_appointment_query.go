package queries

import (
	"errors"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/guard"
)

var (
	ErrGetAppointmentQueryIsNotConstructed = errors.New(
		"GetAppointmentQuery must be created via NewGetAppointmentQuery constructor",
	)
)

type GetAppointmentQuery struct {
	appointmentID kernel.UUID
	guard         guard.ConstructorGuard
}

func NewGetAppointmentQuery(appointmentID kernel.UUID) (GetAppointmentQuery, error) {
	if err := appointmentID.Validate(); err != nil {
		return GetAppointmentQuery{}, err
	}
	return GetAppointmentQuery{appointmentID: appointmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAppointmentQuery) Validate() error {
	return q.guard.Validate(ErrGetAppointmentQueryIsNotConstructed)
}

func (q GetAppointmentQuery) AppointmentID() kernel.UUID {
	return q.appointmentID
}
