// Package commands contains the operations that modify system state.
// Every handler follows the same shape: validate the command, run the change
// inside one unit of work, commit, then publish events.
package commands

import (
	"context"
	"log/slog"

	"repairshop/internal/core/ports"
)

// Unit of Work interfaces scoped to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AppointmentRepoFactory interface {
		AppointmentRepository() ports.AppointmentRepository
	}

	// ClientUoW manages transactions for client-only operations.
	ClientUoW interface {
		TxManager
		ClientRepoFactory
	}

	ClientUoWFactory interface {
		Create() ClientUoW
	}

	// OrderUoW is used by order commands; the client repository is needed to
	// check that the order's client exists.
	OrderUoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans clients, orders and appointments. Appointment commands use it
	// because a booking references a client and optionally an order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   clients := uow.ClientRepository()
	//   appointments := uow.AppointmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
		AppointmentRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// publish hands committed events to the publisher. A failure is logged and
// swallowed: the state change has already been committed.
func publish(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, events ...ports.Event) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		for _, e := range events {
			logger.WarnContext(ctx, "failed to publish event",
				"event_type", string(e.Type),
				"aggregate_id", e.AggregateID.String(),
				"error", err,
			)
		}
	}
}
