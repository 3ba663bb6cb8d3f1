package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"repairshop/internal/core/application/usecases/commands"
	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/client"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var t0 = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Add(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByFolio(ctx context.Context, folio order.Folio) (*order.Order, error) {
	args := m.Called(ctx, folio)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockAppointmentRepository struct{ mock.Mock }

func (m *MockAppointmentRepository) Add(ctx context.Context, a *appointment.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Get(ctx context.Context, id kernel.UUID) (*appointment.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*appointment.Appointment)
	return a, args.Error(1)
}

func (m *MockAppointmentRepository) FindOccupyingOverlapping(
	ctx context.Context,
	window kernel.TimeWindow,
) ([]*appointment.Appointment, error) {
	args := m.Called(ctx, window)
	list, _ := args.Get(0).([]*appointment.Appointment)
	return list, args.Error(1)
}

func (m *MockAppointmentRepository) FindDueForReminder(
	ctx context.Context,
	now time.Time,
	lead time.Duration,
) ([]*appointment.Appointment, error) {
	args := m.Called(ctx, now, lead)
	list, _ := args.Get(0).([]*appointment.Appointment)
	return list, args.Error(1)
}

func (m *MockAppointmentRepository) List(
	ctx context.Context,
	filter ports.AppointmentFilter,
) ([]*appointment.Appointment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*appointment.Appointment)
	return list, args.Error(1)
}

// MockUoW satisfies ClientUoW, OrderUoW and UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AppointmentRepository() ports.AppointmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AppointmentRepository)
}

type MockClientUoWFactory struct{ uow *MockUoW }

func (f MockClientUoWFactory) Create() commands.ClientUoW { return f.uow }

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...ports.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// newMockUoW expects the usual Begin / ... / Commit / Rollback sequence and
// hands out the given repositories.
func newMockUoW(clients *MockClientRepository, orders *MockOrderRepository, appts *MockAppointmentRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	if clients != nil {
		uow.On("ClientRepository").Return(clients)
	}
	if orders != nil {
		uow.On("OrderRepository").Return(orders)
	}
	if appts != nil {
		uow.On("AppointmentRepository").Return(appts)
	}
	return uow
}

func eventTypes(events []ports.Event) []ports.EventType {
	out := make([]ports.EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
