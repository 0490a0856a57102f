// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"context"
	"time"

	"github.com/deppfellow/casting-agency/internal/lib/job"
	"github.com/deppfellow/casting-agency/internal/repository"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/rs/zerolog"
)

type Services struct {
	Actor *ActorService
	Movie *MovieService
	Job   *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Actor: NewActorService(repos.Actor, notifier),
		Movie: NewMovieService(repos.Movie, notifier),
		Job:   s.Job,
	}
}

// Notifier publishes catalog changes. *job.JobService implements it.
type Notifier interface {
	NotifyCatalogChange(ctx context.Context, p job.CatalogChangePayload) error
}

// notify publishes a change without failing the caller: the write has
// already been committed, so an enqueue failure is only logged.
func notify(ctx context.Context, n Notifier, entity, action string, id int, label string) {
	if n == nil {
		return
	}

	err := n.NotifyCatalogChange(ctx, job.CatalogChangePayload{
		Entity:     entity,
		Action:     action,
		ID:         id,
		Label:      label,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("entity", entity).
			Str("action", action).
			Int("id", id).
			Msg("failed to enqueue catalog change notification")
	}
}
