// Package router builds the Echo instance: global middleware, the error
// handler and every route group.
package router

import (
	"github.com/deppfellow/casting-agency/internal/handler"
	"github.com/deppfellow/casting-agency/internal/middleware"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewRouter wires middleware and routes. Middleware order matters:
// the request id and New Relic transaction must exist before the request
// logger is built, and recovery must wrap everything that can panic.
func NewRouter(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// "/actors/" and "/actors" are the same route.
	r.Pre(echomw.RemoveTrailingSlash())

	r.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.RateLimit.Limit(),
		mw.Metrics.Instrument(),
	)

	registerSystemRoutes(r, h, mw)
	registerActorRoutes(r, h.Actor, mw.Auth)
	registerMovieRoutes(r, h.Movie, mw.Auth)

	return r
}
