// Package testutil provides in-memory stores, a recording notifier and a
// token issuer for tests that run without PostgreSQL, Redis or a real
// identity provider.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/casting-agency/internal/lib/job"
	"github.com/deppfellow/casting-agency/internal/model"
	"github.com/deppfellow/casting-agency/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// ActorStore is an in-memory service.ActorStore.
type ActorStore struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Actor

	// Err, when set, is returned by every method.
	Err error
}

func NewActorStore(seed ...model.Actor) *ActorStore {
	s := &ActorStore{rows: make(map[int]model.Actor)}
	for _, a := range seed {
		if _, err := s.CreateActor(context.Background(), a); err != nil {
			panic(err)
		}
	}
	return s
}

func (s *ActorStore) ListActors(context.Context) ([]model.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	actors := make([]model.Actor, 0, len(s.rows))
	for _, a := range s.rows {
		actors = append(actors, a)
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i].ID < actors[j].ID })
	return actors, nil
}

func (s *ActorStore) GetActorByID(_ context.Context, id int) (*model.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	a, ok := s.rows[id]
	if !ok {
		return nil, sqlerr.WrapNotFound("actors", pgx.ErrNoRows)
	}
	return &a, nil
}

func (s *ActorStore) CreateActor(_ context.Context, actor model.Actor) (*model.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	s.nextID++
	now := time.Now().UTC()
	actor.ID, actor.CreatedAt, actor.UpdatedAt = s.nextID, now, now
	s.rows[actor.ID] = actor
	return &actor, nil
}

func (s *ActorStore) UpdateActor(_ context.Context, id int, patch model.ActorPatch) (*model.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	a, ok := s.rows[id]
	if !ok {
		return nil, sqlerr.WrapNotFound("actors", pgx.ErrNoRows)
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Age != nil {
		a.Age = *patch.Age
	}
	if patch.Gender != nil {
		a.Gender = *patch.Gender
	}
	a.UpdatedAt = time.Now().UTC()
	s.rows[id] = a
	return &a, nil
}

func (s *ActorStore) DeleteActor(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.rows[id]; !ok {
		return sqlerr.WrapNotFound("actors", pgx.ErrNoRows)
	}
	delete(s.rows, id)
	return nil
}

// MovieStore is an in-memory service.MovieStore.
type MovieStore struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Movie

	Err error
}

func NewMovieStore(seed ...model.Movie) *MovieStore {
	s := &MovieStore{rows: make(map[int]model.Movie)}
	for _, m := range seed {
		if _, err := s.CreateMovie(context.Background(), m); err != nil {
			panic(err)
		}
	}
	return s
}

func (s *MovieStore) ListMovies(context.Context) ([]model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	movies := make([]model.Movie, 0, len(s.rows))
	for _, m := range s.rows {
		movies = append(movies, m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (s *MovieStore) GetMovieByID(_ context.Context, id int) (*model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	m, ok := s.rows[id]
	if !ok {
		return nil, sqlerr.WrapNotFound("movies", pgx.ErrNoRows)
	}
	return &m, nil
}

func (s *MovieStore) CreateMovie(_ context.Context, movie model.Movie) (*model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	s.nextID++
	now := time.Now().UTC()
	movie.ID, movie.CreatedAt, movie.UpdatedAt = s.nextID, now, now
	s.rows[movie.ID] = movie
	return &movie, nil
}

func (s *MovieStore) UpdateMovie(_ context.Context, id int, patch model.MoviePatch) (*model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	m, ok := s.rows[id]
	if !ok {
		return nil, sqlerr.WrapNotFound("movies", pgx.ErrNoRows)
	}
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Release != nil {
		m.Release = *patch.Release
	}
	m.UpdatedAt = time.Now().UTC()
	s.rows[id] = m
	return &m, nil
}

func (s *MovieStore) DeleteMovie(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.rows[id]; !ok {
		return sqlerr.WrapNotFound("movies", pgx.ErrNoRows)
	}
	delete(s.rows, id)
	return nil
}

// Notifier records catalog change notifications.
type Notifier struct {
	mu     sync.Mutex
	events []job.CatalogChangePayload

	// Err, when set, is returned by NotifyCatalogChange after recording.
	Err error
}

func (n *Notifier) NotifyCatalogChange(_ context.Context, p job.CatalogChangePayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, p)
	return n.Err
}

// Events returns a copy of the recorded notifications.
func (n *Notifier) Events() []job.CatalogChangePayload {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]job.CatalogChangePayload(nil), n.events...)
}
