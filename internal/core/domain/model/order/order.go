package order

import (
	"errors"
	"strings"
	"time"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a repair order: a client's device handed in with a problem description,
// moving through the status lifecycle until it is delivered or cancelled.
//
// Order follows these invariants:
//   - Identifier, folio and client reference are always valid
//   - Problem description is never blank
//   - Status only changes through ChangeStatus / ApplyStatus, which consult the
//     transition table and append exactly one HistoryEntry per accepted change
//
// New history entries are kept in a pending list until the repository has
// written them in the same transaction as the order row.
type Order struct {
	id                 kernel.UUID
	folio              Folio
	clientID           kernel.UUID
	priority           Priority
	problemDescription string
	diagnosis          string
	solution           string
	status             Status
	createdAt          time.Time
	updatedAt          time.Time

	// pendingHistory holds entries not yet persisted
	pendingHistory []*HistoryEntry

	isConstructed bool
}

// NewOrder opens a repair order in Received status and records the initial
// "order created" history entry.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.NewFolio(), clientID,
//	    "screen does not turn on", order.PriorityNormal, nil, time.Now())
//	if err != nil {
//	    // validation failure
//	}
//	// o.Status() == order.Received, len(o.PendingHistory()) == 1
func NewOrder(
	id kernel.UUID,
	folio Folio,
	clientID kernel.UUID,
	problemDescription string,
	priority Priority,
	actorID *kernel.UUID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Received,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setFolio(folio),
		o.setClientID(clientID),
		o.setProblemDescription(problemDescription),
		o.setPriority(priority),
	); err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(o.id, Received, CreatedNote, actorID, now)
	if err != nil {
		return nil, err
	}
	o.pendingHistory = append(o.pendingHistory, entry)

	return o, nil
}

// RestoreOrder rebuilds an order read from storage. No history is generated.
func RestoreOrder(
	id kernel.UUID,
	folio Folio,
	clientID kernel.UUID,
	problemDescription string,
	diagnosis string,
	solution string,
	priority Priority,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		diagnosis:     diagnosis,
		solution:      solution,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setFolio(folio),
		o.setClientID(clientID),
		o.setProblemDescription(problemDescription),
		o.setPriority(priority),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by one of its constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Folio() Folio {
	return o.folio
}

func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

func (o *Order) Priority() Priority {
	return o.priority
}

func (o *Order) ProblemDescription() string {
	return o.problemDescription
}

func (o *Order) Diagnosis() string {
	return o.diagnosis
}

func (o *Order) Solution() string {
	return o.solution
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// PendingHistory returns the history entries recorded since the order was
// built or last persisted, oldest first.
func (o *Order) PendingHistory() []*HistoryEntry {
	out := make([]*HistoryEntry, len(o.pendingHistory))
	copy(out, o.pendingHistory)
	return out
}

// ClearPendingHistory is called by the repository once the pending entries
// have been written.
func (o *Order) ClearPendingHistory() {
	o.pendingHistory = nil
}

// ChangeStatus moves the order to next and appends one history entry with the
// note "status changed from X to Y" (plus the caller's notes, if any).
//
// This method enforces the following business rules:
//   - next must be a valid status
//   - current -> next must be in the transition table; self-transitions and any
//     change out of Delivered or Cancelled fail with *TransitionError
//   - on failure the order is left untouched
//
// Example:
//
//	entry, err := o.ChangeStatus(order.Diagnosing, "", &technicianID, time.Now())
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // rejected, o.Status() unchanged
//	}
func (o *Order) ChangeStatus(next Status, notes string, actorID *kernel.UUID, now time.Time) (*HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(o.id, newStatus, transitionNote(o.status, newStatus, strings.TrimSpace(notes)), actorID, now)
	if err != nil {
		return nil, err
	}

	o.status = newStatus
	o.updatedAt = now
	o.pendingHistory = append(o.pendingHistory, entry)
	return entry, nil
}

// ApplyStatus is the field-level update path: a status equal to the current one
// is accepted without validation and without writing history (nil entry);
// any other status goes through ChangeStatus.
func (o *Order) ApplyStatus(next Status, notes string, actorID *kernel.UUID, now time.Time) (*HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if next == o.status {
		return nil, nil //nolint:nilnil // unchanged status carries no history
	}
	return o.ChangeStatus(next, notes, actorID, now)
}

// Details groups the editable, non-lifecycle fields of an order.
// Nil fields are left unchanged.
type Details struct {
	Priority  *Priority
	Diagnosis *string
	Solution  *string
}

// UpdateDetails applies the non-nil fields of d.
func (o *Order) UpdateDetails(d Details, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if d.Priority != nil {
		if err := d.Priority.Validate(); err != nil {
			return err
		}
		o.priority = *d.Priority
	}
	if d.Diagnosis != nil {
		o.diagnosis = strings.TrimSpace(*d.Diagnosis)
	}
	if d.Solution != nil {
		o.solution = strings.TrimSpace(*d.Solution)
	}

	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setFolio(folio Folio) error {
	if err := folio.Validate(); err != nil {
		return err
	}
	o.folio = folio
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client_id", err)
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setProblemDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("problem_description")
	}
	o.problemDescription = description
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
