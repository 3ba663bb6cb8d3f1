package ports

import (
	"context"
	"time"

	"repairshop/internal/core/domain/model/kernel"
)

// EventType names an outbound notification; it doubles as the routing key.
type EventType string

const (
	EventOrderCreated             EventType = "order_created"
	EventOrderStatusChanged       EventType = "order_status_changed"
	EventAppointmentScheduled     EventType = "appointment_scheduled"
	EventAppointmentRescheduled   EventType = "appointment_rescheduled"
	EventAppointmentStatusChanged EventType = "appointment_status_changed"
	EventAppointmentReminder      EventType = "appointment_reminder"
)

// Event is a notification emitted after a command has committed.
type Event struct {
	ID          kernel.UUID
	Type        EventType
	AggregateID kernel.UUID
	OccurredAt  time.Time
	Data        map[string]any
}

// NewEvent stamps a fresh identifier.
func NewEvent(eventType EventType, aggregateID kernel.UUID, occurredAt time.Time, data map[string]any) Event {
	return Event{
		ID:          kernel.NewUUID(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  occurredAt,
		Data:        data,
	}
}

// EventPublisher delivers events to interested parties. Delivery is best effort:
// callers log failures and never undo the committed operation.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}
