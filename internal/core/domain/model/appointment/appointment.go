package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

const maxTitleLength = 200

var (
	// ErrAppointmentIsNotConstructed is returned when using an improperly initialized Appointment.
	ErrAppointmentIsNotConstructed = errors.New("Appointment must be created via NewAppointment constructor")
)

// Appointment is a client visit booked on the shop calendar.
// It is an aggregate root; the conflict rules that span several appointments
// live in the services package.
//
// Business rules:
//   - Appointment must reference a valid client; the order reference is optional
//   - Title is 1..200 characters after trimming
//   - The slot is always valid (see NewSlot)
//   - New appointments start in StatusScheduled with no reminder sent
//   - Moving an appointment clears the reminder flag
//
// Example usage:
//
//	slot, _ := appointment.NewSlot(start, 30, nil)
//	a, err := appointment.NewAppointment(kernel.NewUUID(), clientID, nil,
//	    "Screen replacement drop-off", "", slot, "", time.Now())
type Appointment struct {
	// id uniquely identifies the appointment
	id kernel.UUID
	// clientID is the client who attends
	clientID kernel.UUID
	// orderID optionally links the visit to a repair order
	orderID *kernel.UUID
	// title is the short calendar label
	title       string
	description string
	// slot is the calendar position
	slot         Slot
	status       Status
	reminderSent bool
	notes        string
	createdAt    time.Time
	updatedAt    time.Time
	// guard ensures the appointment was properly constructed
	guard guard.ConstructorGuard
}

// NewAppointment books a new appointment in StatusScheduled.
// It does not check the calendar; callers run the conflict detector first.
func NewAppointment(
	id kernel.UUID,
	clientID kernel.UUID,
	orderID *kernel.UUID,
	title string,
	description string,
	slot Slot,
	notes string,
	now time.Time,
) (*Appointment, error) {
	return RestoreAppointment(id, clientID, orderID, title, description, slot, StatusScheduled, false, notes, now, now)
}

// RestoreAppointment rebuilds an appointment read from storage.
func RestoreAppointment(
	id kernel.UUID,
	clientID kernel.UUID,
	orderID *kernel.UUID,
	title string,
	description string,
	slot Slot,
	status Status,
	reminderSent bool,
	notes string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Appointment, error) {
	a := &Appointment{
		description:  strings.TrimSpace(description),
		reminderSent: reminderSent,
		notes:        strings.TrimSpace(notes),
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setClientID(clientID),
		a.setOrderID(orderID),
		a.setTitle(title),
		a.setSlot(slot),
		a.setStatus(status),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Appointment) Validate() error {
	if a == nil {
		return ErrAppointmentIsNotConstructed
	}
	return a.guard.Validate(ErrAppointmentIsNotConstructed)
}

func (a *Appointment) ID() kernel.UUID {
	return a.id
}

func (a *Appointment) ClientID() kernel.UUID {
	return a.clientID
}

// OrderID returns a copy of the linked order identifier, or nil.
func (a *Appointment) OrderID() *kernel.UUID {
	if a.orderID == nil {
		return nil
	}
	id := *a.orderID
	return &id
}

func (a *Appointment) Title() string {
	return a.title
}

func (a *Appointment) Description() string {
	return a.description
}

func (a *Appointment) Slot() Slot {
	return a.slot
}

func (a *Appointment) Start() time.Time {
	return a.slot.Start()
}

func (a *Appointment) DurationMinutes() int {
	return a.slot.DurationMinutes()
}

func (a *Appointment) EffectiveEnd() time.Time {
	return a.slot.EffectiveEnd()
}

func (a *Appointment) Status() Status {
	return a.status
}

// IsOccupying reports whether the appointment currently blocks its window.
func (a *Appointment) IsOccupying() bool {
	return a.status.IsOccupying()
}

func (a *Appointment) ReminderSent() bool {
	return a.reminderSent
}

func (a *Appointment) Notes() string {
	return a.notes
}

func (a *Appointment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Appointment) UpdatedAt() time.Time {
	return a.updatedAt
}

// Reschedule moves the appointment to slot and clears the reminder flag.
// The calendar check against other appointments is the caller's job.
func (a *Appointment) Reschedule(slot Slot, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := a.setSlot(slot); err != nil {
		return err
	}
	a.reminderSent = false
	a.updatedAt = now
	return nil
}

// ChangeStatus sets any valid status. It reports whether the change makes a
// non-occupying appointment occupy its window again, in which case the caller
// must re-check the calendar before persisting.
func (a *Appointment) ChangeStatus(status Status, now time.Time) (reoccupies bool, err error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	if err := status.Validate(); err != nil {
		return false, err
	}

	reoccupies = !a.status.IsOccupying() && status.IsOccupying()
	a.status = status
	a.updatedAt = now
	return reoccupies, nil
}

// MarkReminderSent records that the client has been reminded.
func (a *Appointment) MarkReminderSent(now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.reminderSent = true
	a.updatedAt = now
	return nil
}

// NeedsReminder reports whether the appointment is occupying, not yet reminded
// and starts within [now, now+lead).
func (a *Appointment) NeedsReminder(now time.Time, lead time.Duration) bool {
	start := a.slot.Start()
	return a.IsOccupying() && !a.reminderSent && !start.Before(now) && start.Before(now.Add(lead))
}

func (a *Appointment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Appointment) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client_id", err)
	}
	a.clientID = clientID
	return nil
}

func (a *Appointment) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		a.orderID = nil
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("order_id", err)
	}
	id := *orderID
	a.orderID = &id
	return nil
}

func (a *Appointment) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if n := utf8.RuneCountInString(title); n > maxTitleLength {
		return errs.NewValueIsInvalidErrorWithCause("title", fmt.Errorf("%d characters exceeds %d", n, maxTitleLength))
	}
	a.title = title
	return nil
}

func (a *Appointment) setSlot(slot Slot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	a.slot = slot
	return nil
}

func (a *Appointment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}
