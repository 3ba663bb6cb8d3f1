package queries

import (
	"errors"
	"time"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery lists the audit trail of one order, newest entry first.
type GetOrderHistoryQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// HistoryEntryView is one line of the audit trail.
type HistoryEntryView struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Status    order.Status
	Notes     string
	ActorID   *kernel.UUID
	CreatedAt time.Time
}

func NewHistoryEntryView(h *order.HistoryEntry) HistoryEntryView {
	return HistoryEntryView{
		ID:        h.ID(),
		OrderID:   h.OrderID(),
		Status:    h.Status(),
		Notes:     h.Notes(),
		ActorID:   h.ActorID(),
		CreatedAt: h.CreatedAt(),
	}
}
