package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/core/ports"
)

// folioAttempts bounds how many folios are drawn for one order. Two draws
// colliding in a 32-bit space is not expected in practice.
const folioAttempts = 2

// CreateOrderCommandHandler opens a repair order in "received" status. The
// order row and its "order created" history entry are written in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle fails with an errs.ObjectNotFoundError when the client does not exist.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o, err := h.newOrder(cmd, now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.ClientRepository().Get(ctx, cmd.ClientID()); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		err = uow.OrderRepository().Add(ctx, o)
		if !errors.Is(err, order.ErrFolioTaken) || attempt == folioAttempts {
			break
		}

		h.logger.WarnContext(ctx, "folio already taken, drawing another", "folio", o.Folio().String())
		if o, err = h.newOrder(cmd, now); err != nil {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order created", "order_id", o.ID().String(), "folio", o.Folio().String())
	publish(ctx, h.publisher, h.logger, ports.NewEvent(ports.EventOrderCreated, o.ID(), now, map[string]any{
		"folio":     o.Folio().String(),
		"client_id": o.ClientID().String(),
		"status":    o.Status().String(),
		"priority":  o.Priority().String(),
	}))

	return o, nil
}

func (h CreateOrderCommandHandler) newOrder(cmd CreateOrderCommand, now time.Time) (*order.Order, error) {
	return order.NewOrder(cmd.OrderID(), order.NewFolio(), cmd.ClientID(), cmd.ProblemDescription(),
		cmd.Priority(), cmd.ActorID(), now)
}
