package router

import (
	"github.com/deppfellow/casting-agency/internal/handler"
	"github.com/deppfellow/casting-agency/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers health, metrics and docs endpoints.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(mw.Metrics.Handler()))

	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
