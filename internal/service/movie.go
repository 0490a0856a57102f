package service

import (
	"context"

	"github.com/deppfellow/casting-agency/internal/errs"
	"github.com/deppfellow/casting-agency/internal/lib/job"
	"github.com/deppfellow/casting-agency/internal/model"
)

const entityMovie = "movie"

// MovieStore is the persistence the movie service needs.
// *repository.MovieRepository implements it.
type MovieStore interface {
	ListMovies(ctx context.Context) ([]model.Movie, error)
	GetMovieByID(ctx context.Context, id int) (*model.Movie, error)
	CreateMovie(ctx context.Context, movie model.Movie) (*model.Movie, error)
	UpdateMovie(ctx context.Context, id int, patch model.MoviePatch) (*model.Movie, error)
	DeleteMovie(ctx context.Context, id int) error
}

// MovieService holds the movie use cases. Writes are announced the same
// way as actor writes.
type MovieService struct {
	store    MovieStore
	notifier Notifier
}

// NewMovieService constructs a MovieService. notifier may be nil.
func NewMovieService(store MovieStore, notifier Notifier) *MovieService {
	return &MovieService{store: store, notifier: notifier}
}

// ListMovies returns every movie. An empty catalog is reported as 404.
func (s *MovieService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, err
	}

	if len(movies) == 0 {
		code := "MOVIES_NOT_FOUND"
		return nil, errs.NewNotFoundError("No movies found", true, &code)
	}

	return movies, nil
}

// GetMovie returns the movie with id, or a not-found error.
func (s *MovieService) GetMovie(ctx context.Context, id int) (*model.Movie, error) {
	return s.store.GetMovieByID(ctx, id)
}

// CreateMovie inserts the movie described by req.
func (s *MovieService) CreateMovie(ctx context.Context, req *model.CreateMovieRequest) (*model.Movie, error) {
	created, err := s.store.CreateMovie(ctx, req.Movie())
	if err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, entityMovie, job.ActionCreated, created.ID, created.Title)
	return created, nil
}

// UpdateMovie applies the fields of req that carry a value. Only a
// patch that changes something is announced.
func (s *MovieService) UpdateMovie(ctx context.Context, req *model.UpdateMovieRequest) (*model.Movie, error) {
	patch := req.Patch()
	movie, err := s.store.UpdateMovie(ctx, req.ID, patch)
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		notify(ctx, s.notifier, entityMovie, job.ActionUpdated, movie.ID, movie.Title)
	}
	return movie, nil
}

// DeleteMovie removes the movie and returns its id.
func (s *MovieService) DeleteMovie(ctx context.Context, id int) (int, error) {
	if err := s.store.DeleteMovie(ctx, id); err != nil {
		return 0, err
	}

	notify(ctx, s.notifier, entityMovie, job.ActionDeleted, id, "")
	return id, nil
}
