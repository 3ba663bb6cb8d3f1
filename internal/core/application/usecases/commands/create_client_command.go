package commands

import (
	"errors"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/guard"
)

var ErrCreateClientCommandIsNotConstructed = errors.New(
	"CreateClientCommand must be created via NewCreateClientCommand constructor",
)

// CreateClientCommand registers a new client. Field rules (name and phone
// required) are enforced by the client aggregate.
type CreateClientCommand struct { //nolint:recvcheck //using for validation
	clientID kernel.UUID
	name     string
	phone    string
	email    string
	notes    string

	guard guard.ConstructorGuard
}

func NewCreateClientCommand(clientID kernel.UUID, name, phone, email, notes string) (CreateClientCommand, error) {
	if err := clientID.Validate(); err != nil {
		return CreateClientCommand{}, err
	}

	return CreateClientCommand{
		clientID: clientID,
		name:     name,
		phone:    phone,
		email:    email,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

func (c CreateClientCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c CreateClientCommand) Name() string {
	return c.name
}

func (c CreateClientCommand) Phone() string {
	return c.phone
}

func (c CreateClientCommand) Email() string {
	return c.email
}

func (c CreateClientCommand) Notes() string {
	return c.notes
}
