// Package appointmentrepo persists appointments with GORM.
//
// The appointments table stores the effective end next to the slot so that
// the appointments_no_overlap exclusion constraint can index the occupied
// range directly.
package appointmentrepo

import (
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AppointmentDTO is the row of the appointments table.
type AppointmentDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	OrderID         *uuid.UUID `gorm:"type:uuid"`
	Title           string     `gorm:"size:200;not null"`
	Description     *string
	ScheduledStart  time.Time  `gorm:"index;not null"`
	DurationMinutes int        `gorm:"not null"`
	EndDate         *time.Time
	EffectiveEnd    time.Time `gorm:"not null"`
	Status          string    `gorm:"size:16;not null"`
	ReminderSent    bool      `gorm:"not null"`
	Notes           *string
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (AppointmentDTO) TableName() string {
	return "appointments"
}

func fromDomain(a *appointment.Appointment) AppointmentDTO {
	var orderID *uuid.UUID
	if id := a.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	slot := a.Slot()
	return AppointmentDTO{
		ID:              a.ID().Bytes(),
		ClientID:        a.ClientID().Bytes(),
		OrderID:         orderID,
		Title:           a.Title(),
		Description:     nullable(a.Description()),
		ScheduledStart:  slot.Start(),
		DurationMinutes: slot.DurationMinutes(),
		EndDate:         slot.EndDate(),
		EffectiveEnd:    slot.EffectiveEnd(),
		Status:          a.Status().String(),
		ReminderSent:    a.ReminderSent(),
		Notes:           nullable(a.Notes()),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

// ToDomain rebuilds an appointment from its row; exported for the query side.
func ToDomain(dto AppointmentDTO) (*appointment.Appointment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	slot, err := appointment.NewSlot(dto.ScheduledStart, dto.DurationMinutes, dto.EndDate)
	if err != nil {
		return nil, err
	}

	status, err := appointment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return appointment.RestoreAppointment(id, clientID, orderID, dto.Title, deref(dto.Description),
		slot, status, dto.ReminderSent, deref(dto.Notes), dto.CreatedAt, dto.UpdatedAt)
}

func toDomainList(dtos []AppointmentDTO) ([]*appointment.Appointment, error) {
	out := make([]*appointment.Appointment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
