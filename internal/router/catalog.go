package router

import (
	"net/http"

	"github.com/deppfellow/casting-agency/internal/handler"
	"github.com/deppfellow/casting-agency/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerActorRoutes registers /actors. Reads are public; writes need a
// token carrying the matching permission. Actors are created through
// POST /add-actor only.
func registerActorRoutes(r *echo.Echo, h *handler.ActorHandler, auth *middleware.AuthMiddleware) {
	actors := r.Group("/actors")
	actors.GET("", handler.Handle(h.Handler, h.ListActors, http.StatusOK))
	actors.GET("/:id", handler.Handle(h.Handler, h.GetActor, http.StatusOK))
	actors.PATCH("/:id", handler.Handle(h.Handler, h.UpdateActor, http.StatusOK),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionPatchActor))
	actors.DELETE("/:id", handler.Handle(h.Handler, h.DeleteActor, http.StatusOK),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionDeleteActor))

	r.POST("/add-actor", handler.Handle(h.Handler, h.CreateActor, http.StatusOK),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionPostActors))
}

// registerMovieRoutes registers /movies the same way, with POST /add-movie
// as the create path.
func registerMovieRoutes(r *echo.Echo, h *handler.MovieHandler, auth *middleware.AuthMiddleware) {
	movies := r.Group("/movies")
	movies.GET("", handler.Handle(h.Handler, h.ListMovies, http.StatusOK))
	movies.GET("/:id", handler.Handle(h.Handler, h.GetMovie, http.StatusOK))
	movies.PATCH("/:id", handler.Handle(h.Handler, h.UpdateMovie, http.StatusOK),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionPatchMovie))
	movies.DELETE("/:id", handler.Handle(h.Handler, h.DeleteMovie, http.StatusOK),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionDeleteMovie))

	r.POST("/add-movie", handler.Handle(h.Handler, h.CreateMovie, http.StatusOK),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionPostMovies))
}
