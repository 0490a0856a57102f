package service

import (
	"context"

	"github.com/deppfellow/casting-agency/internal/errs"
	"github.com/deppfellow/casting-agency/internal/lib/job"
	"github.com/deppfellow/casting-agency/internal/model"
)

const entityActor = "actor"

// ActorStore is the persistence the actor service needs.
// *repository.ActorRepository implements it.
type ActorStore interface {
	ListActors(ctx context.Context) ([]model.Actor, error)
	GetActorByID(ctx context.Context, id int) (*model.Actor, error)
	CreateActor(ctx context.Context, actor model.Actor) (*model.Actor, error)
	UpdateActor(ctx context.Context, id int, patch model.ActorPatch) (*model.Actor, error)
	DeleteActor(ctx context.Context, id int) error
}

// ActorService holds the actor use cases. Every successful write is
// announced through the notifier, when one is configured.
type ActorService struct {
	store    ActorStore
	notifier Notifier
}

// NewActorService constructs an ActorService. notifier may be nil.
func NewActorService(store ActorStore, notifier Notifier) *ActorService {
	return &ActorService{store: store, notifier: notifier}
}

// ListActors returns every actor. An empty catalog is reported as 404.
func (s *ActorService) ListActors(ctx context.Context) ([]model.Actor, error) {
	actors, err := s.store.ListActors(ctx)
	if err != nil {
		return nil, err
	}

	if len(actors) == 0 {
		code := "ACTORS_NOT_FOUND"
		return nil, errs.NewNotFoundError("No actors found", true, &code)
	}

	return actors, nil
}

// GetActor returns the actor with id, or a not-found error.
func (s *ActorService) GetActor(ctx context.Context, id int) (*model.Actor, error) {
	return s.store.GetActorByID(ctx, id)
}

// CreateActor inserts the actor described by req.
func (s *ActorService) CreateActor(ctx context.Context, req *model.CreateActorRequest) (*model.Actor, error) {
	actor, err := s.store.CreateActor(ctx, req.Actor())
	if err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, entityActor, job.ActionCreated, actor.ID, actor.Name)
	return actor, nil
}

// UpdateActor applies the fields of req that carry a value. Only a patch
// that changes something is announced.
func (s *ActorService) UpdateActor(ctx context.Context, req *model.UpdateActorRequest) (*model.Actor, error) {
	patch := req.Patch()

	actor, err := s.store.UpdateActor(ctx, req.ID, patch)
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		notify(ctx, s.notifier, entityActor, job.ActionUpdated, actor.ID, actor.Name)
	}
	return actor, nil
}

// DeleteActor removes the actor and returns its id.
func (s *ActorService) DeleteActor(ctx context.Context, id int) (int, error) {
	if err := s.store.DeleteActor(ctx, id); err != nil {
		return 0, err
	}

	notify(ctx, s.notifier, entityActor, job.ActionDeleted, id, "")
	return id, nil
}
