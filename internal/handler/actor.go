package handler

import (
	"github.com/deppfellow/casting-agency/internal/model"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/deppfellow/casting-agency/internal/service"
	"github.com/labstack/echo/v4"
)

// ActorHandler serves the /actors routes and POST /add-actor.
type ActorHandler struct {
	Handler
	actorService *service.ActorService
}

// NewActorHandler constructs an ActorHandler backed by actorService.
func NewActorHandler(s *server.Server, actorService *service.ActorService) *ActorHandler {
	return &ActorHandler{
		Handler:      NewHandler(s),
		actorService: actorService,
	}
}

// ListActors returns every actor in the catalog.
func (h *ActorHandler) ListActors(c echo.Context, _ *model.ListActorsRequest) (*model.ActorsResponse, error) {
	actors, err := h.actorService.ListActors(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.ActorsResponse{Success: true, Actors: actors}, nil
}

// GetActor returns the actor addressed by the path id.
func (h *ActorHandler) GetActor(c echo.Context, req *model.ActorID) (*model.ActorResponse, error) {
	actor, err := h.actorService.GetActor(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.ActorResponse{Success: true, Actor: *actor}, nil
}

// CreateActor stores a new actor and echoes it back.
func (h *ActorHandler) CreateActor(c echo.Context, req *model.CreateActorRequest) (*model.ActorResponse, error) {
	actor, err := h.actorService.CreateActor(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.ActorResponse{Success: true, Actor: *actor}, nil
}

// UpdateActor applies a partial update and returns the stored actor.
func (h *ActorHandler) UpdateActor(c echo.Context, req *model.UpdateActorRequest) (*model.ActorResponse, error) {
	actor, err := h.actorService.UpdateActor(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.ActorResponse{Success: true, Actor: *actor}, nil
}

// DeleteActor removes an actor and reports its id.
func (h *ActorHandler) DeleteActor(c echo.Context, req *model.ActorID) (*model.ActorDeletedResponse, error) {
	id, err := h.actorService.DeleteActor(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.ActorDeletedResponse{Success: true, ActorID: id}, nil
}
