package commands

import (
	"context"
	"log/slog"
	"time"

	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/core/ports"
)

// ChangeOrderStatusResult is the order after the transition and the history
// entry that recorded it.
type ChangeOrderStatusResult struct {
	Order *order.Order
	Entry *order.HistoryEntry
}

// ChangeOrderStatusCommandHandler applies one status transition.
//
// The order is read with a row lock, so two concurrent transitions of the same
// order run one after the other and the second is validated against the
// first one's result. The new status and its history entry commit together;
// a rejected transition writes nothing.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "change_order_status_handler"),
	}
}

// Handle returns an errs.ObjectNotFoundError for unknown orders and an
// *order.TransitionError when the table does not allow the change.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	from := o.Status()
	now := time.Now().UTC()
	entry, err := o.ChangeStatus(cmd.NewStatus(), cmd.Notes(), cmd.ActorID(), now)
	if err != nil {
		h.logger.InfoContext(ctx, "status transition rejected",
			"order_id", o.ID().String(), "from", from.String(), "to", cmd.NewStatus().String())
		return ChangeOrderStatusResult{}, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID().String(), "from", from.String(), "to", o.Status().String())
	publish(ctx, h.publisher, h.logger, statusChangedEvent(o, from, entry))

	return ChangeOrderStatusResult{Order: o, Entry: entry}, nil
}

func statusChangedEvent(o *order.Order, from order.Status, entry *order.HistoryEntry) ports.Event {
	data := map[string]any{
		"folio":       o.Folio().String(),
		"client_id":   o.ClientID().String(),
		"from_status": from.String(),
		"to_status":   o.Status().String(),
		"notes":       entry.Notes(),
	}
	if actor := entry.ActorID(); actor != nil {
		data["actor_id"] = actor.String()
	}
	return ports.NewEvent(ports.EventOrderStatusChanged, o.ID(), entry.CreatedAt(), data)
}
