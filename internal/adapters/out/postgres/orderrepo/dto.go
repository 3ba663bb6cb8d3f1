// Package orderrepo persists order aggregates and their history with GORM.
// Statuses and priorities are stored as their wire tokens.
package orderrepo

import (
	"time"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Folio              string    `gorm:"size:12;uniqueIndex;not null"`
	ClientID           uuid.UUID `gorm:"type:uuid;index;not null"`
	Priority           string    `gorm:"size:16;not null"`
	ProblemDescription string    `gorm:"not null"`
	Diagnosis          *string
	Solution           *string
	Status             string    `gorm:"size:32;index;not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryEntryDTO is the row of the order_history table. The seq column is
// filled by the database and only read by queries.
type HistoryEntryDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	Status    string     `gorm:"size:32;not null"`
	Notes     string     `gorm:"not null"`
	ActorID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                 o.ID().Bytes(),
		Folio:              o.Folio().String(),
		ClientID:           o.ClientID().Bytes(),
		Priority:           o.Priority().String(),
		ProblemDescription: o.ProblemDescription(),
		Diagnosis:          nullable(o.Diagnosis()),
		Solution:           nullable(o.Solution()),
		Status:             o.Status().String(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	priority, err := order.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, order.Folio(dto.Folio), clientID, dto.ProblemDescription,
		deref(dto.Diagnosis), deref(dto.Solution), priority, status, dto.CreatedAt, dto.UpdatedAt)
}

func historyFromDomain(h *order.HistoryEntry) HistoryEntryDTO {
	var actorID *uuid.UUID
	if id := h.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return HistoryEntryDTO{
		ID:        h.ID().Bytes(),
		OrderID:   h.OrderID().Bytes(),
		Status:    h.Status().String(),
		Notes:     h.Notes(),
		ActorID:   actorID,
		CreatedAt: h.CreatedAt(),
	}
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
