package http

import (
	"errors"
	"net/http"

	"repairshop/internal/api"
	"repairshop/internal/core/application/usecases/queries"
	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// fail writes the error response for err:
//
//	not found            -> 404
//	validation           -> 422
//	invalid transition   -> 409
//	scheduling conflict  -> 409, naming the blocking appointment when known
//	anything else        -> 500
func (s *Server) fail(ctx echo.Context, err error) error {
	var (
		conflictErr   *appointment.ConflictError
		transitionErr *order.TransitionError
	)

	switch {
	case errors.As(err, &conflictErr):
		body := api.Error{Code: http.StatusConflict, Message: err.Error()}
		if conflictErr.Conflict != nil {
			c := toConflict(queries.NewConflictView(conflictErr.Conflict))
			body.Conflict = &c
		}
		return ctx.JSON(http.StatusConflict, body)

	case errors.As(err, &transitionErr):
		return errorJSON(ctx, http.StatusConflict, err.Error())

	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())

	case errs.IsValidation(err):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())

	default:
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return errorJSON(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return errorJSON(ctx, http.StatusBadRequest, message)
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, api.Error{Code: code, Message: message})
}

// recordTransition counts a requested order transition. Errors other than a
// rejected transition (missing order, storage failure) are not counted.
func (s *Server) recordTransition(err error) {
	switch {
	case err == nil:
		s.metrics.OrderTransition(metrics.TransitionAccepted)
	case errors.Is(err, order.ErrInvalidTransition):
		s.metrics.OrderTransition(metrics.TransitionRejected)
	}
}

func (s *Server) recordConflict(operation string, err error) {
	if errors.Is(err, appointment.ErrSchedulingConflict) {
		s.metrics.SchedulingConflict(operation)
	}
}
