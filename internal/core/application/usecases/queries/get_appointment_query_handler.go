package queries

import (
	"context"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
)

// AppointmentGetter is the part of ports.AppointmentRepository the lookup needs.
type AppointmentGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*appointment.Appointment, error)
}

type GetAppointmentQueryHandler struct {
	getter AppointmentGetter
}

func NewGetAppointmentQueryHandler(getter AppointmentGetter) GetAppointmentQueryHandler {
	return GetAppointmentQueryHandler{getter: getter}
}

// Handle returns an errs.ObjectNotFoundError for an unknown id.
func (h GetAppointmentQueryHandler) Handle(ctx context.Context, query GetAppointmentQuery) (AppointmentView, error) {
	if err := query.Validate(); err != nil {
		return AppointmentView{}, err
	}

	a, err := h.getter.Get(ctx, query.AppointmentID())
	if err != nil {
		return AppointmentView{}, err
	}
	return NewAppointmentView(a), nil
}
