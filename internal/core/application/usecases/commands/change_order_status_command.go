package commands

import (
	"errors"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests one lifecycle transition of an order.
// Whether the transition is allowed is decided by the handler against the
// stored status, not here.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	notes     string
	actorID   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	notes string,
	actorID *kernel.UUID,
) (ChangeOrderStatusCommand, error) {
	var actorErr error
	if actorID != nil {
		actorErr = actorID.Validate()
	}

	if err := errors.Join(orderID.Validate(), newStatus.Validate(), actorErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID:   orderID,
		newStatus: newStatus,
		notes:     notes,
		actorID:   actorID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

func (c ChangeOrderStatusCommand) Notes() string {
	return c.notes
}

func (c ChangeOrderStatusCommand) ActorID() *kernel.UUID {
	return c.actorID
}
