package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx response. Conflict is set only for
// scheduling conflicts that name the blocking appointment.
type Error struct {
	Code     int       `json:"code"`
	Message  string    `json:"message"`
	Conflict *Conflict `json:"conflict,omitempty"`
}

type NewClient struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

type Client struct {
	Id        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Email     *string            `json:"email,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type NewOrder struct {
	ClientId           openapi_types.UUID  `json:"client_id"`
	ProblemDescription string              `json:"problem_description"`
	Priority           *string             `json:"priority,omitempty"`
	ActorId            *openapi_types.UUID `json:"actor_id,omitempty"`
}

// UpdateOrder carries a field-level update; absent fields stay unchanged and
// an empty diagnosis or solution clears it.
type UpdateOrder struct {
	Priority  *string             `json:"priority,omitempty"`
	Diagnosis *string             `json:"diagnosis,omitempty"`
	Solution  *string             `json:"solution,omitempty"`
	Status    *string             `json:"status,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
	ActorId   *openapi_types.UUID `json:"actor_id,omitempty"`
}

type Order struct {
	Id                 openapi_types.UUID `json:"id"`
	Folio              string             `json:"folio"`
	ClientId           openapi_types.UUID `json:"client_id"`
	Priority           string             `json:"priority"`
	ProblemDescription string             `json:"problem_description"`
	Diagnosis          *string            `json:"diagnosis,omitempty"`
	Solution           *string            `json:"solution,omitempty"`
	Status             string             `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type StatusChange struct {
	Status  string              `json:"status"`
	Notes   *string             `json:"notes,omitempty"`
	ActorId *openapi_types.UUID `json:"actor_id,omitempty"`
}

type HistoryEntry struct {
	Id        openapi_types.UUID  `json:"id"`
	OrderId   openapi_types.UUID  `json:"order_id"`
	Status    string              `json:"status"`
	Notes     string              `json:"notes"`
	ActorId   *openapi_types.UUID `json:"actor_id,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type StatusChangeResult struct {
	Order Order        `json:"order"`
	Entry HistoryEntry `json:"entry"`
}

type NewAppointment struct {
	ClientId        openapi_types.UUID  `json:"client_id"`
	OrderId         *openapi_types.UUID `json:"order_id,omitempty"`
	Title           string              `json:"title"`
	Description     *string             `json:"description,omitempty"`
	ScheduledStart  time.Time           `json:"scheduled_start"`
	DurationMinutes *int                `json:"duration_minutes,omitempty"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
}

type Reschedule struct {
	ScheduledStart  time.Time  `json:"scheduled_start"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
}

type AppointmentStatusChange struct {
	Status string `json:"status"`
}

type Appointment struct {
	Id              openapi_types.UUID  `json:"id"`
	ClientId        openapi_types.UUID  `json:"client_id"`
	OrderId         *openapi_types.UUID `json:"order_id,omitempty"`
	Title           string              `json:"title"`
	Description     *string             `json:"description,omitempty"`
	ScheduledStart  time.Time           `json:"scheduled_start"`
	DurationMinutes int                 `json:"duration_minutes"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
	EffectiveEnd    time.Time           `json:"effective_end"`
	Status          string              `json:"status"`
	ReminderSent    bool                `json:"reminder_sent"`
	Notes           *string             `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type Conflict struct {
	Id              openapi_types.UUID `json:"id"`
	Title           string             `json:"title"`
	Start           time.Time          `json:"start"`
	DurationMinutes int                `json:"duration_minutes"`
}

type Availability struct {
	Available bool      `json:"available"`
	Conflict  *Conflict `json:"conflict,omitempty"`
}

// ListOrdersParams are the query parameters of GET /api/v1/orders.
type ListOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Search *string `form:"search,omitempty" json:"search,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *int    `form:"offset,omitempty" json:"offset,omitempty"`
}

// ListAppointmentsParams are the query parameters of GET /api/v1/appointments.
type ListAppointmentsParams struct {
	From     *time.Time          `form:"from,omitempty" json:"from,omitempty"`
	To       *time.Time          `form:"to,omitempty" json:"to,omitempty"`
	Status   *string             `form:"status,omitempty" json:"status,omitempty"`
	ClientId *openapi_types.UUID `form:"client_id,omitempty" json:"client_id,omitempty"`
	Limit    *int                `form:"limit,omitempty" json:"limit,omitempty"`
	Offset   *int                `form:"offset,omitempty" json:"offset,omitempty"`
}

// CheckAvailabilityParams are the query parameters of GET /api/v1/appointments/availability.
type CheckAvailabilityParams struct {
	Start           time.Time           `form:"start" json:"start"`
	DurationMinutes *int                `form:"duration_minutes,omitempty" json:"duration_minutes,omitempty"`
	ExcludeId       *openapi_types.UUID `form:"exclude_id,omitempty" json:"exclude_id,omitempty"`
}
