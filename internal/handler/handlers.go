// Package handler is the HTTP layer.
//
// Handlers receive requests bound and validated by the validation package,
// call the service layer and shape the success envelope. Errors are left
// to the global error handler.
package handler

import (
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/deppfellow/casting-agency/internal/service"
)

// Handlers groups every HTTP handler so the router receives one dependency.
type Handlers struct {
	Actor   *ActorHandler
	Movie   *MovieHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Actor:   NewActorHandler(s, services.Actor),
		Movie:   NewMovieHandler(s, services.Movie),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
