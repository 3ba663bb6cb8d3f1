package queries

import (
	"context"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads order_history. Entries written in the same
// instant keep their insertion order through the seq column.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns an errs.ObjectNotFoundError when the order does not exist; an
// existing order always has at least its creation entry.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]HistoryEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	if err := h.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, query.OrderID().Bytes()).
		Scan(&exists).Error; err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			notes,
			actor_id,
			created_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY seq DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]HistoryEntryView, 0)
	for rows.Next() {
		var (
			entry       HistoryEntryView
			id, orderID uuid.UUID
			actorID     uuid.NullUUID
			status      string
		)

		if err = rows.Scan(&id, &orderID, &status, &entry.Notes, &actorID, &entry.CreatedAt); err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if entry.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if actorID.Valid {
			actor, actorErr := kernel.UUIDFromBytes(actorID.UUID[:])
			if actorErr != nil {
				return nil, actorErr
			}
			entry.ActorID = &actor
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
