package queries

import (
	"context"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/ports"
)

// AppointmentLister is the part of ports.AppointmentRepository the list query needs.
type AppointmentLister interface {
	List(ctx context.Context, filter ports.AppointmentFilter) ([]*appointment.Appointment, error)
}

type ListAppointmentsQueryHandler struct {
	lister AppointmentLister
}

func NewListAppointmentsQueryHandler(lister AppointmentLister) ListAppointmentsQueryHandler {
	return ListAppointmentsQueryHandler{lister: lister}
}

func (h ListAppointmentsQueryHandler) Handle(
	ctx context.Context,
	query ListAppointmentsQuery,
) ([]AppointmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	list, err := h.lister.List(ctx, query.Filter())
	if err != nil {
		return nil, err
	}

	views := make([]AppointmentView, 0, len(list))
	for _, a := range list {
		views = append(views, NewAppointmentView(a))
	}
	return views, nil
}
