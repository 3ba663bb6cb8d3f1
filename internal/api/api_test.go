package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"repairshop/internal/api"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument(t *testing.T) {
	doc, err := api.LoadDocument(t.Context())
	require.NoError(t, err)

	for _, path := range []string{
		"/health",
		"/api/v1/orders/{orderId}/status",
		"/api/v1/orders/folio/{folio}",
		"/api/v1/appointments/availability",
		"/api/v1/appointments/{appointmentId}/status",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}

func TestRegisterHandlers_RoutesMatchDocument(t *testing.T) {
	doc, err := api.LoadDocument(t.Context())
	require.NoError(t, err)

	e := echo.New()
	api.RegisterHandlers(e, nil)

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for path, item := range doc.Paths.Map() {
		echoPath := strings.NewReplacer("{", ":", "}", "").Replace(path)
		for method := range item.Operations() {
			assert.True(t, registered[method+" "+echoPath], "%s %s is not routed", method, path)
		}
	}
}

func TestRequestValidator(t *testing.T) {
	doc, err := api.LoadDocument(t.Context())
	require.NoError(t, err)

	validator, err := api.RequestValidator(doc, nil)
	require.NoError(t, err)

	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e := echo.New()
	e.Use(validator)
	e.POST("/api/v1/orders", ok)
	e.POST("/api/v1/orders/:orderId/status", ok)
	e.POST("/api/v1/appointments", ok)
	e.GET("/api/v1/appointments", ok)
	e.GET("/api/v1/appointments/availability", ok)
	e.GET("/internal", ok)

	cases := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"valid body", http.MethodPost, "/api/v1/orders",
			`{"client_id":"6f1c1a0e-1d2b-4c5d-8e9f-0a1b2c3d4e5f","problem_description":"won't boot"}`, http.StatusNoContent},
		{"missing required field", http.MethodPost, "/api/v1/orders", `{"problem_description":"x"}`, http.StatusUnprocessableEntity},
		{"unknown order status", http.MethodPost, "/api/v1/orders/6f1c1a0e-1d2b-4c5d-8e9f-0a1b2c3d4e5f/status",
			`{"status":"shipped"}`, http.StatusUnprocessableEntity},
		{"duration below minimum", http.MethodPost, "/api/v1/appointments",
			`{"client_id":"6f1c1a0e-1d2b-4c5d-8e9f-0a1b2c3d4e5f","title":"Pickup","scheduled_start":"2026-02-10T10:00:00Z","duration_minutes":10}`,
			http.StatusUnprocessableEntity},
		{"limit above maximum", http.MethodGet, "/api/v1/appointments?limit=501", "", http.StatusUnprocessableEntity},
		{"missing required query", http.MethodGet, "/api/v1/appointments/availability", "", http.StatusUnprocessableEntity},
		{"unparseable query", http.MethodGet, "/api/v1/appointments?limit=many", "", http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/v1/orders", `{"client_id":`, http.StatusBadRequest},
		{"valid query", http.MethodGet, "/api/v1/appointments/availability?start=2026-02-10T10:00:00Z", "", http.StatusNoContent},
		{"undocumented path passes", http.MethodGet, "/internal", "", http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}
