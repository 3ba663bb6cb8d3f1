package commands

import (
	"errors"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand edits an order's fields. Nil fields are left unchanged.
// A status equal to the stored one is ignored; a different one is a regular
// transition with history.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	details order.Details
	status  *order.Status
	notes   string
	actorID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(
	orderID kernel.UUID,
	details order.Details,
	status *order.Status,
	notes string,
	actorID *kernel.UUID,
) (UpdateOrderCommand, error) {
	var priorityErr, statusErr, actorErr error
	if details.Priority != nil {
		priorityErr = details.Priority.Validate()
	}
	if status != nil {
		statusErr = status.Validate()
	}
	if actorID != nil {
		actorErr = actorID.Validate()
	}

	if err := errors.Join(orderID.Validate(), priorityErr, statusErr, actorErr); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		orderID: orderID,
		details: details,
		status:  status,
		notes:   notes,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) Details() order.Details {
	return c.details
}

func (c UpdateOrderCommand) Status() *order.Status {
	return c.status
}

func (c UpdateOrderCommand) Notes() string {
	return c.notes
}

func (c UpdateOrderCommand) ActorID() *kernel.UUID {
	return c.actorID
}
