package api

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestValidator rejects requests that do not match doc. Values that break a
// schema rule or leave out a required field are answered with 422, input that
// cannot be parsed with 400. Paths that doc does not describe (metrics,
// swagger) pass through untouched.
func RequestValidator(doc *openapi3.T, skipper middleware.Skipper) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrPathNotFound) {
					return next(c)
				}
				if errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return echo.NewHTTPError(http.StatusMethodNotAllowed, findErr.Error())
				}
				return echo.NewHTTPError(http.StatusBadRequest, findErr.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return echo.NewHTTPError(validationStatus(validateErr), validateErr.Error())
			}

			return next(c)
		}
	}, nil
}

func validationStatus(err error) int {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return http.StatusBadRequest
	}

	var parseErr *openapi3filter.ParseError
	if errors.As(reqErr, &parseErr) {
		return http.StatusBadRequest
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(reqErr, &schemaErr) ||
		errors.Is(reqErr, openapi3filter.ErrInvalidRequired) ||
		errors.Is(reqErr, openapi3filter.ErrInvalidEmptyValue) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
