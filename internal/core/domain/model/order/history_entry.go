package order

import (
	"errors"
	"fmt"
	"time"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

// CreatedNote is the note of the history entry written together with a new order.
const CreatedNote = "order created"

var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry or RestoreHistoryEntry")

// HistoryEntry is one immutable line of an order's audit trail. It has no setters:
// once built it is only ever inserted, never updated or deleted.
type HistoryEntry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    Status
	notes     string
	actorID   *kernel.UUID
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewHistoryEntry records that orderID reached status at createdAt.
// actorID is optional (system-initiated changes have none).
func NewHistoryEntry(
	orderID kernel.UUID,
	status Status,
	notes string,
	actorID *kernel.UUID,
	createdAt time.Time,
) (*HistoryEntry, error) {
	return RestoreHistoryEntry(kernel.NewUUID(), orderID, status, notes, actorID, createdAt)
}

// RestoreHistoryEntry rebuilds an entry read from storage.
func RestoreHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	status Status,
	notes string,
	actorID *kernel.UUID,
	createdAt time.Time,
) (*HistoryEntry, error) {
	var actorErr error
	if actorID != nil {
		actorErr = actorID.Validate()
	}

	var createdErr error
	if createdAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("created_at")
	}

	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate(), actorErr, createdErr); err != nil {
		return nil, err
	}

	return &HistoryEntry{
		id:        id,
		orderID:   orderID,
		status:    status,
		notes:     notes,
		actorID:   actorID,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (h *HistoryEntry) Validate() error {
	if h == nil {
		return ErrHistoryEntryIsNotConstructed
	}
	return h.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

func (h *HistoryEntry) ID() kernel.UUID { return h.id }
func (h *HistoryEntry) OrderID() kernel.UUID { return h.orderID }
func (h *HistoryEntry) Status() Status { return h.status }
func (h *HistoryEntry) Notes() string { return h.notes }
func (h *HistoryEntry) ActorID() *kernel.UUID { return h.actorID }
func (h *HistoryEntry) CreatedAt() time.Time { return h.createdAt }

// transitionNote is the system-generated note of an accepted status change.
// Caller notes, when present, are appended after a colon.
func transitionNote(from, to Status, notes string) string {
	note := fmt.Sprintf("status changed from %s to %s", from, to)
	if notes != "" {
		note += ": " + notes
	}
	return note
}
