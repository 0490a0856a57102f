package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/deppfellow/casting-agency/internal/middleware"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth runs the configured dependency checks and answers 200 when
// every one passes, 503 otherwise. The body is the health.Report.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := h.server.Health.Check(c.Request().Context())

	if !report.Healthy() {
		failing := report.Failing()

		logger.Warn().
			Strs("failing", failing).
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"operation":         "health_check",
				"failing_checks":    strings.Join(failing, ","),
				"total_duration_ms": time.Since(start).Milliseconds(),
			})
		}

		return c.JSON(http.StatusServiceUnavailable, report)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, report)
}
