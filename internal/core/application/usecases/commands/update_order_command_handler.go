package commands

import (
	"context"
	"log/slog"
	"time"

	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/core/ports"
)

// UpdateOrderCommandHandler applies a field-level order update under the same
// row lock as status transitions. Concurrent edits of the other fields are
// last-writer-wins.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "update_order_handler"),
	}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	from := o.Status()

	var entry *order.HistoryEntry
	if next := cmd.Status(); next != nil {
		if entry, err = o.ApplyStatus(*next, cmd.Notes(), cmd.ActorID(), now); err != nil {
			return nil, err
		}
	}

	if err = o.UpdateDetails(cmd.Details(), now); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if entry != nil {
		h.logger.InfoContext(ctx, "order status changed",
			"order_id", o.ID().String(), "from", from.String(), "to", o.Status().String())
		publish(ctx, h.publisher, h.logger, statusChangedEvent(o, from, entry))
	}

	return o, nil
}
