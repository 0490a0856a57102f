package middleware

import (
	"net/http"
	"testing"

	"github.com/deppfellow/casting-agency/internal/errs"
	"github.com/deppfellow/casting-agency/internal/lib/health"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	s := newTestServer(t, nil)
	m := NewMetricsMiddleware()

	e := newTestEcho(s)
	e.Use(m.Instrument())
	e.GET("/actors/:id", func(c echo.Context) error {
		if c.Param("id") == "404" {
			return errs.NewNotFoundError("Actor not found", false, nil)
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	do(e, http.MethodGet, "/actors/1", nil)
	do(e, http.MethodGet, "/actors/2", nil)
	do(e, http.MethodGet, "/actors/404", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/actors/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/actors/:id", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))

	m.RecordHealth(health.Report{Checks: map[string]health.CheckResult{
		"database": {Status: health.StatusHealthy},
		"redis":    {Status: health.StatusUnhealthy},
	}})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dependency.WithLabelValues("database")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dependency.WithLabelValues("redis")))

	rec := do(e, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `agency_http_requests_total{method="GET",route="/actors/:id",status="200"} 2`)
	assert.Contains(t, rec.Body.String(), `agency_dependency_up{check="redis"} 0`)
}
