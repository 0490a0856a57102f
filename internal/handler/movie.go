package handler

import (
	"github.com/deppfellow/casting-agency/internal/model"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/deppfellow/casting-agency/internal/service"
	"github.com/labstack/echo/v4"
)

// MovieHandler serves the /movies routes and POST /add-movie.
type MovieHandler struct {
	Handler
	movieService *service.MovieService
}

// NewMovieHandler constructs a MovieHandler backed by movieService.
func NewMovieHandler(s *server.Server, movieService *service.MovieService) *MovieHandler {
	return &MovieHandler{
		Handler:      NewHandler(s),
		movieService: movieService,
	}
}

// ListMovies returns every movie in the catalog.
func (h *MovieHandler) ListMovies(c echo.Context, _ *model.ListMoviesRequest) (*model.MoviesResponse, error) {
	movies, err := h.movieService.ListMovies(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.MoviesResponse{Success: true, Movies: movies}, nil
}

// GetMovie returns the movie addressed by the path id.
func (h *MovieHandler) GetMovie(c echo.Context, req *model.MovieID) (*model.MovieResponse, error) {
	movie, err := h.movieService.GetMovie(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.MovieResponse{Success: true, Movie: *movie}, nil
}

// CreateMovie stores a new movie and echoes it back.
func (h *MovieHandler) CreateMovie(c echo.Context, req *model.CreateMovieRequest) (*model.MovieResponse, error) {
	movie, err := h.movieService.CreateMovie(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.MovieResponse{Success: true, Movie: *movie}, nil
}

// UpdateMovie applies a partial update and returns the stored movie.
func (h *MovieHandler) UpdateMovie(c echo.Context, req *model.UpdateMovieRequest) (*model.MovieResponse, error) {
	movie, err := h.movieService.UpdateMovie(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.MovieResponse{Success: true, Movie: *movie}, nil
}

// DeleteMovie removes a movie and reports its id.
func (h *MovieHandler) DeleteMovie(c echo.Context, req *model.MovieID) (*model.MovieDeletedResponse, error) {
	id, err := h.movieService.DeleteMovie(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.MovieDeletedResponse{Success: true, MovieID: id}, nil
}
