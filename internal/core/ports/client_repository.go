package ports

import (
	"context"

	"repairshop/internal/core/domain/model/client"
	"repairshop/internal/core/domain/model/kernel"
)

// ClientRepository defines the persistence contract for clients.
type ClientRepository interface {
	Add(ctx context.Context, aggregate *client.Client) error

	// Get returns an errs.ObjectNotFoundError for unknown identifiers.
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)
}
