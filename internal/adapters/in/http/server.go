package http

import (
	"context"
	"log/slog"
	"net/http"

	"repairshop/internal/api"
	"repairshop/internal/core/application/usecases/commands"
	"repairshop/internal/core/application/usecases/queries"
	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/client"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CreateClientHandler interface {
	Handle(ctx context.Context, cmd commands.CreateClientCommand) (*client.Client, error)
}

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type ChangeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.ChangeOrderStatusResult, error)
}

type UpdateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
}

type ScheduleAppointmentHandler interface {
	Handle(ctx context.Context, cmd commands.ScheduleAppointmentCommand) (*appointment.Appointment, error)
}

type RescheduleAppointmentHandler interface {
	Handle(ctx context.Context, cmd commands.RescheduleAppointmentCommand) (*appointment.Appointment, error)
}

type ChangeAppointmentStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeAppointmentStatusCommand) (*appointment.Appointment, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
}

type GetOrderHistoryHandler interface {
	Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.HistoryEntryView, error)
}

type CheckAvailabilityHandler interface {
	Handle(ctx context.Context, query queries.CheckAvailabilityQuery) (queries.AvailabilityView, error)
}

type ListAppointmentsHandler interface {
	Handle(ctx context.Context, query queries.ListAppointmentsQuery) ([]queries.AppointmentView, error)
}

type GetAppointmentHandler interface {
	Handle(ctx context.Context, query queries.GetAppointmentQuery) (queries.AppointmentView, error)
}

// Handlers groups the use cases the HTTP server delegates to.
type Handlers struct {
	// Command handlers
	CreateClient            CreateClientHandler
	CreateOrder             CreateOrderHandler
	ChangeOrderStatus       ChangeOrderStatusHandler
	UpdateOrder             UpdateOrderHandler
	ScheduleAppointment     ScheduleAppointmentHandler
	RescheduleAppointment   RescheduleAppointmentHandler
	ChangeAppointmentStatus ChangeAppointmentStatusHandler

	// Query handlers
	GetOrder          GetOrderHandler
	ListOrders        ListOrdersHandler
	GetOrderHistory   GetOrderHistoryHandler
	CheckAvailability CheckAvailabilityHandler
	ListAppointments  ListAppointmentsHandler
	GetAppointment    GetAppointmentHandler
}

// Server implements api.ServerInterface.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, m *metrics.Metrics, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		metrics:  m,
		logger:   logger.With("component", "http_server"),
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateClient handles POST /api/v1/clients.
func (s *Server) CreateClient(ctx echo.Context) error {
	var body api.NewClient
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateClientCommand(kernel.NewUUID(), body.Name, body.Phone, deref(body.Email), deref(body.Notes))
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.CreateClient.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toClient(c))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body api.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := fromAPIUUID(body.ClientId)
	if err != nil {
		return s.fail(ctx, err)
	}
	actorID, err := fromAPIUUIDPtr(body.ActorId)
	if err != nil {
		return s.fail(ctx, err)
	}
	priority, err := order.ParsePriority(deref(body.Priority))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), clientID, body.ProblemDescription, priority, actorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderView(o)))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params api.ListOrdersParams) error {
	var status *order.Status
	if params.Status != nil {
		st, err := order.ParseStatus(*params.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		status = &st
	}

	query, err := queries.NewListOrdersQuery(status, deref(params.Search), deref(params.Limit), deref(params.Offset))
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.Order, len(views))
	for i, v := range views {
		response[i] = toOrder(v)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderByFolio handles GET /api/v1/orders/folio/{folio}.
func (s *Server) GetOrderByFolio(ctx echo.Context, folio string) error {
	query, err := queries.NewGetOrderByFolioQuery(folio)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.getOrder(ctx, query)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := fromAPIUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.getOrder(ctx, query)
}

func (s *Server) getOrder(ctx echo.Context, query queries.GetOrderQuery) error {
	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(view))
}

// UpdateOrder handles PUT /api/v1/orders/{orderId}. A status in the body goes
// through the same transition rules as ChangeOrderStatus.
func (s *Server) UpdateOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body api.UpdateOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := fromAPIUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	actorID, err := fromAPIUUIDPtr(body.ActorId)
	if err != nil {
		return s.fail(ctx, err)
	}

	details := order.Details{Diagnosis: body.Diagnosis, Solution: body.Solution}
	if body.Priority != nil {
		p, parseErr := order.ParsePriority(*body.Priority)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		details.Priority = &p
	}

	var status *order.Status
	if body.Status != nil {
		st, parseErr := order.ParseStatus(*body.Status)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		status = &st
	}

	cmd, err := commands.NewUpdateOrderCommand(id, details, status, deref(body.Notes), actorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	if status != nil {
		s.recordTransition(err)
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderView(o)))
}

// ChangeOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var body api.StatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := fromAPIUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	actorID, err := fromAPIUUIDPtr(body.ActorId)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, status, deref(body.Notes), actorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	s.recordTransition(err)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, api.StatusChangeResult{
		Order: toOrder(queries.NewOrderView(result.Order)),
		Entry: toHistoryEntry(queries.NewHistoryEntryView(result.Entry)),
	})
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := fromAPIUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.HistoryEntry, len(entries))
	for i, e := range entries {
		response[i] = toHistoryEntry(e)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ScheduleAppointment handles POST /api/v1/appointments.
func (s *Server) ScheduleAppointment(ctx echo.Context) error {
	var body api.NewAppointment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := fromAPIUUID(body.ClientId)
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := fromAPIUUIDPtr(body.OrderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), clientID, orderID,
		body.Title, deref(body.Description), body.ScheduledStart, deref(body.DurationMinutes),
		body.EndDate, deref(body.Notes))
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.handlers.ScheduleAppointment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.recordConflict("schedule", err)
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toAppointment(queries.NewAppointmentView(a)))
}

// ListAppointments handles GET /api/v1/appointments.
func (s *Server) ListAppointments(ctx echo.Context, params api.ListAppointmentsParams) error {
	var status *appointment.Status
	if params.Status != nil {
		st, err := appointment.ParseStatus(*params.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		status = &st
	}
	clientID, err := fromAPIUUIDPtr(params.ClientId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListAppointmentsQuery(params.From, params.To, status, clientID,
		deref(params.Limit), deref(params.Offset))
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.handlers.ListAppointments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.Appointment, len(views))
	for i, v := range views {
		response[i] = toAppointment(v)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CheckAvailability handles GET /api/v1/appointments/availability.
func (s *Server) CheckAvailability(ctx echo.Context, params api.CheckAvailabilityParams) error {
	excludeID, err := fromAPIUUIDPtr(params.ExcludeId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewCheckAvailabilityQuery(params.Start, deref(params.DurationMinutes), excludeID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.CheckAvailability.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := api.Availability{Available: view.Available}
	if view.Conflict != nil {
		c := toConflict(*view.Conflict)
		response.Conflict = &c
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAppointment handles GET /api/v1/appointments/{appointmentId}.
func (s *Server) GetAppointment(ctx echo.Context, appointmentId openapi_types.UUID) error {
	id, err := fromAPIUUID(appointmentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetAppointmentQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetAppointment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAppointment(view))
}

// RescheduleAppointment handles PUT /api/v1/appointments/{appointmentId}.
func (s *Server) RescheduleAppointment(ctx echo.Context, appointmentId openapi_types.UUID) error {
	var body api.Reschedule
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := fromAPIUUID(appointmentId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRescheduleAppointmentCommand(id, body.ScheduledStart, deref(body.DurationMinutes), body.EndDate)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.handlers.RescheduleAppointment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.recordConflict("reschedule", err)
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAppointment(queries.NewAppointmentView(a)))
}

// ChangeAppointmentStatus handles PATCH /api/v1/appointments/{appointmentId}/status.
func (s *Server) ChangeAppointmentStatus(ctx echo.Context, appointmentId openapi_types.UUID) error {
	var body api.AppointmentStatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := fromAPIUUID(appointmentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := appointment.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewChangeAppointmentStatusCommand(id, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.handlers.ChangeAppointmentStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.recordConflict("change_status", err)
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAppointment(queries.NewAppointmentView(a)))
}
