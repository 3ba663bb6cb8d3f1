// Package ports defines the persistence and messaging contracts the application
// layer depends on. Adapters under internal/adapters implement them.
package ports

import (
	"context"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only history.
type OrderRepository interface {
	// Add inserts a new order together with its pending history entries.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order row and inserts its pending history entries.
	// Existing history rows are never touched.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier.
	// Returns an errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding
	// transaction ends. Concurrent transitions of the same order serialize on it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByFolio retrieves an order by its human-readable reference.
	GetByFolio(ctx context.Context, folio order.Folio) (*order.Order, error)
}
