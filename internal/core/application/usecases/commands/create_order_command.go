package commands

import (
	"errors"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand opens a repair order for an existing client.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), clientID, "won't charge", order.PriorityNormal, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, logger)
//	created, err := handler.Handle(ctx, cmd)
//	// created.Status() == order.Received
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	clientID           kernel.UUID
	problemDescription string
	priority           order.Priority
	actorID            *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	problemDescription string,
	priority order.Priority,
	actorID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		problemDescription: problemDescription,
		actorID:            actorID,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setPriority(priority),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c CreateOrderCommand) ProblemDescription() string {
	return c.problemDescription
}

func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// ActorID is the staff member opening the order, if known.
func (c CreateOrderCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client_id", err)
	}
	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if priority == order.PriorityUnknown {
		priority = order.PriorityNormal
	}
	if err := priority.Validate(); err != nil {
		return err
	}
	c.priority = priority
	return nil
}
