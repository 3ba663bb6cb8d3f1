package cmd

import (
	"log/slog"

	httpadapter "repairshop/internal/adapters/in/http"
	"repairshop/internal/adapters/out/postgres"
	"repairshop/internal/adapters/out/postgres/appointmentrepo"
	"repairshop/internal/core/application/usecases/commands"
	"repairshop/internal/core/application/usecases/queries"
	"repairshop/internal/core/domain/services"
	"repairshop/internal/core/ports"
	"repairshop/internal/jobs"
	"repairshop/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	detector   services.ConflictDetector
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		detector:   services.NewConflictDetector(),
		metrics:    m,
		logger:     logger,
	}
}

func (c *CompositionRoot) clientUoWFactory() commands.ClientUoWFactory {
	return FuncClientUoWFactory(func() commands.ClientUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() commands.CreateClientCommandHandler {
	return commands.NewCreateClientCommandHandler(c.clientUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateScheduleAppointmentCommandHandler() commands.ScheduleAppointmentCommandHandler {
	return commands.NewScheduleAppointmentCommandHandler(c.fullUoWFactory(), c.detector, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRescheduleAppointmentCommandHandler() commands.RescheduleAppointmentCommandHandler {
	return commands.NewRescheduleAppointmentCommandHandler(c.fullUoWFactory(), c.detector, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateChangeAppointmentStatusCommandHandler() commands.ChangeAppointmentStatusCommandHandler {
	return commands.NewChangeAppointmentStatusCommandHandler(c.fullUoWFactory(), c.detector, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSendAppointmentRemindersCommandHandler() commands.SendAppointmentRemindersCommandHandler {
	return commands.NewSendAppointmentRemindersCommandHandler(c.fullUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckAvailabilityQueryHandler() queries.CheckAvailabilityQueryHandler {
	return queries.NewCheckAvailabilityQueryHandler(appointmentrepo.NewGormAppointmentRepository(c.gormDB), c.detector)
}

func (c *CompositionRoot) CreateListAppointmentsQueryHandler() queries.ListAppointmentsQueryHandler {
	return queries.NewListAppointmentsQueryHandler(appointmentrepo.NewGormAppointmentRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetAppointmentQueryHandler() queries.GetAppointmentQueryHandler {
	return queries.NewGetAppointmentQueryHandler(appointmentrepo.NewGormAppointmentRepository(c.gormDB))
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateClient:            c.CreateCreateClientCommandHandler(),
		CreateOrder:             c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:       c.CreateChangeOrderStatusCommandHandler(),
		UpdateOrder:             c.CreateUpdateOrderCommandHandler(),
		ScheduleAppointment:     c.CreateScheduleAppointmentCommandHandler(),
		RescheduleAppointment:   c.CreateRescheduleAppointmentCommandHandler(),
		ChangeAppointmentStatus: c.CreateChangeAppointmentStatusCommandHandler(),
		GetOrder:                c.CreateGetOrderQueryHandler(),
		ListOrders:              c.CreateListOrdersQueryHandler(),
		GetOrderHistory:         c.CreateGetOrderHistoryQueryHandler(),
		CheckAvailability:       c.CreateCheckAvailabilityQueryHandler(),
		ListAppointments:        c.CreateListAppointmentsQueryHandler(),
		GetAppointment:          c.CreateGetAppointmentQueryHandler(),
	}, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewReminderJob(
			c.CreateSendAppointmentRemindersCommandHandler(),
			c.metrics,
			c.config.ReminderSchedule,
			c.config.ReminderLeadTime,
			c.logger,
		),
	)
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
