package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface is implemented by the HTTP adapter; one method per operation
// of openapi.yaml.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (POST /api/v1/clients)
	CreateClient(ctx echo.Context) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /api/v1/orders/folio/{folio})
	GetOrderByFolio(ctx echo.Context, folio string) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (PUT /api/v1/orders/{orderId})
	UpdateOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/orders/{orderId}/history)
	GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/appointments)
	ScheduleAppointment(ctx echo.Context) error
	// (GET /api/v1/appointments)
	ListAppointments(ctx echo.Context, params ListAppointmentsParams) error
	// (GET /api/v1/appointments/availability)
	CheckAvailability(ctx echo.Context, params CheckAvailabilityParams) error
	// (GET /api/v1/appointments/{appointmentId})
	GetAppointment(ctx echo.Context, appointmentId openapi_types.UUID) error
	// (PUT /api/v1/appointments/{appointmentId})
	RescheduleAppointment(ctx echo.Context, appointmentId openapi_types.UUID) error
	// (PATCH /api/v1/appointments/{appointmentId}/status)
	ChangeAppointmentStatus(ctx echo.Context, appointmentId openapi_types.UUID) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the
// typed handler. Binding failures are answered with 400.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) CreateClient(ctx echo.Context) error {
	return w.Handler.CreateClient(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	if err := bindQuery(ctx, "status", false, &params.Status); err != nil {
		return err
	}
	if err := bindQuery(ctx, "search", false, &params.Search); err != nil {
		return err
	}
	if err := bindQuery(ctx, "limit", false, &params.Limit); err != nil {
		return err
	}
	if err := bindQuery(ctx, "offset", false, &params.Offset); err != nil {
		return err
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrderByFolio(ctx echo.Context) error {
	var folio string
	if err := bindPath(ctx, "folio", &folio); err != nil {
		return err
	}
	return w.Handler.GetOrderByFolio(ctx, folio)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.UpdateOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrderHistory(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ScheduleAppointment(ctx echo.Context) error {
	return w.Handler.ScheduleAppointment(ctx)
}

func (w *ServerInterfaceWrapper) ListAppointments(ctx echo.Context) error {
	var params ListAppointmentsParams

	if err := bindQuery(ctx, "from", false, &params.From); err != nil {
		return err
	}
	if err := bindQuery(ctx, "to", false, &params.To); err != nil {
		return err
	}
	if err := bindQuery(ctx, "status", false, &params.Status); err != nil {
		return err
	}
	if err := bindQuery(ctx, "client_id", false, &params.ClientId); err != nil {
		return err
	}
	if err := bindQuery(ctx, "limit", false, &params.Limit); err != nil {
		return err
	}
	if err := bindQuery(ctx, "offset", false, &params.Offset); err != nil {
		return err
	}

	return w.Handler.ListAppointments(ctx, params)
}

func (w *ServerInterfaceWrapper) CheckAvailability(ctx echo.Context) error {
	var params CheckAvailabilityParams

	if err := bindQuery(ctx, "start", true, &params.Start); err != nil {
		return err
	}
	if err := bindQuery(ctx, "duration_minutes", false, &params.DurationMinutes); err != nil {
		return err
	}
	if err := bindQuery(ctx, "exclude_id", false, &params.ExcludeId); err != nil {
		return err
	}

	return w.Handler.CheckAvailability(ctx, params)
}

func (w *ServerInterfaceWrapper) GetAppointment(ctx echo.Context) error {
	var appointmentId openapi_types.UUID
	if err := bindPath(ctx, "appointmentId", &appointmentId); err != nil {
		return err
	}
	return w.Handler.GetAppointment(ctx, appointmentId)
}

func (w *ServerInterfaceWrapper) RescheduleAppointment(ctx echo.Context) error {
	var appointmentId openapi_types.UUID
	if err := bindPath(ctx, "appointmentId", &appointmentId); err != nil {
		return err
	}
	return w.Handler.RescheduleAppointment(ctx, appointmentId)
}

func (w *ServerInterfaceWrapper) ChangeAppointmentStatus(ctx echo.Context) error {
	var appointmentId openapi_types.UUID
	if err := bindPath(ctx, "appointmentId", &appointmentId); err != nil {
		return err
	}
	return w.Handler.ChangeAppointmentStatus(ctx, appointmentId)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/health", w.GetHealth)
	router.POST("/api/v1/clients", w.CreateClient)
	router.POST("/api/v1/orders", w.CreateOrder)
	router.GET("/api/v1/orders", w.ListOrders)
	router.GET("/api/v1/orders/folio/:folio", w.GetOrderByFolio)
	router.GET("/api/v1/orders/:orderId", w.GetOrder)
	router.PUT("/api/v1/orders/:orderId", w.UpdateOrder)
	router.POST("/api/v1/orders/:orderId/status", w.ChangeOrderStatus)
	router.GET("/api/v1/orders/:orderId/history", w.GetOrderHistory)
	router.POST("/api/v1/appointments", w.ScheduleAppointment)
	router.GET("/api/v1/appointments", w.ListAppointments)
	router.GET("/api/v1/appointments/availability", w.CheckAvailability)
	router.GET("/api/v1/appointments/:appointmentId", w.GetAppointment)
	router.PUT("/api/v1/appointments/:appointmentId", w.RescheduleAppointment)
	router.PATCH("/api/v1/appointments/:appointmentId/status", w.ChangeAppointmentStatus)
}

func bindPath(ctx echo.Context, name string, dest any) error {
	if err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, ctx.Param(name), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindQuery(ctx echo.Context, name string, required bool, dest any) error {
	if err := runtime.BindQueryParameter("form", true, required, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}
