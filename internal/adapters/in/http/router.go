package http

import (
	"net/http"
	"strings"

	"repairshop/internal/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterOptions configure NewRouter.
type RouterOptions struct {
	// Document enables request validation and the Swagger UI when set.
	Document *openapi3.T
	// Validate turns on request validation against Document.
	Validate bool
}

// NewRouter builds the echo instance serving server, /metrics and, when a
// document is given, /swagger/*.
func NewRouter(server *Server, opts RouterOptions) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = jsonErrorHandler(e)

	e.Use(middleware.Recover())
	e.Use(requestLogger(server.logger))
	e.Use(metricsMiddleware(server.metrics))

	if opts.Document != nil && opts.Validate {
		validator, err := api.RequestValidator(opts.Document, func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, "/api/")
		})
		if err != nil {
			return nil, err
		}
		e.Use(validator)
	}

	api.RegisterHandlers(e, server)

	e.GET("/metrics", echo.WrapHandler(server.metrics.Handler()))

	if opts.Document != nil {
		if err := api.RegisterSwagger(opts.Document); err != nil {
			return nil, err
		}
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e, nil
}

// jsonErrorHandler renders echo errors (unknown route, binding, validation)
// with the same body as handler errors.
func jsonErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		if he, ok := err.(*echo.HTTPError); ok { //nolint:errorlint // echo returns it unwrapped
			code = he.Code
			if m, isString := he.Message.(string); isString {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, api.Error{Code: code, Message: message})
		}
		if err != nil {
			e.Logger.Error(err)
		}
	}
}
