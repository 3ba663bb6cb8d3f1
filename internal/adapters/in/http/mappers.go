package http

import (
	"repairshop/internal/api"
	"repairshop/internal/core/application/usecases/queries"
	"repairshop/internal/core/domain/model/client"
	"repairshop/internal/core/domain/model/kernel"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func fromAPIUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func fromAPIUUIDPtr(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := fromAPIUUID(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func toAPIUUIDPtr(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	u := id.Bytes()
	return &u
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

// optional maps the empty string to an absent JSON field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toClient(c *client.Client) api.Client {
	return api.Client{
		Id:        c.ID().Bytes(),
		Name:      c.Name(),
		Phone:     c.Phone(),
		Email:     optional(c.Email()),
		Notes:     optional(c.Notes()),
		CreatedAt: c.CreatedAt(),
	}
}

func toOrder(v queries.OrderView) api.Order {
	return api.Order{
		Id:                 v.ID.Bytes(),
		Folio:              v.Folio.String(),
		ClientId:           v.ClientID.Bytes(),
		Priority:           v.Priority.String(),
		ProblemDescription: v.ProblemDescription,
		Diagnosis:          optional(v.Diagnosis),
		Solution:           optional(v.Solution),
		Status:             v.Status.String(),
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func toHistoryEntry(v queries.HistoryEntryView) api.HistoryEntry {
	return api.HistoryEntry{
		Id:        v.ID.Bytes(),
		OrderId:   v.OrderID.Bytes(),
		Status:    v.Status.String(),
		Notes:     v.Notes,
		ActorId:   toAPIUUIDPtr(v.ActorID),
		CreatedAt: v.CreatedAt,
	}
}

func toAppointment(v queries.AppointmentView) api.Appointment {
	return api.Appointment{
		Id:              v.ID.Bytes(),
		ClientId:        v.ClientID.Bytes(),
		OrderId:         toAPIUUIDPtr(v.OrderID),
		Title:           v.Title,
		Description:     optional(v.Description),
		ScheduledStart:  v.ScheduledStart,
		DurationMinutes: v.DurationMinutes,
		EndDate:         v.EndDate,
		EffectiveEnd:    v.EffectiveEnd,
		Status:          v.Status.String(),
		ReminderSent:    v.ReminderSent,
		Notes:           optional(v.Notes),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func toConflict(v queries.ConflictView) api.Conflict {
	return api.Conflict{
		Id:              v.ID.Bytes(),
		Title:           v.Title,
		Start:           v.Start,
		DurationMinutes: v.DurationMinutes,
	}
}
