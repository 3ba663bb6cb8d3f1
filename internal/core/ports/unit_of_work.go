package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction shared by every repository it hands out.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active. Calling it after a
	// successful Commit is harmless and returns that error.
	Rollback(ctx context.Context) error

	ClientRepository() ClientRepository
	OrderRepository() OrderRepository
	AppointmentRepository() AppointmentRepository
}
