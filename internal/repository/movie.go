package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/casting-agency/internal/model"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/deppfellow/casting-agency/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const moviesTable = "movies"

const movieColumns = `id, title, release, created_at, updated_at`

type MovieRepository struct {
	server *server.Server
}

func NewMovieRepository(s *server.Server) *MovieRepository {
	return &MovieRepository{server: s}
}

func (r *MovieRepository) ListMovies(ctx context.Context) ([]model.Movie, error) {
	stmt := `SELECT ` + movieColumns + ` FROM movies ORDER BY id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list movies query: %w", err)
	}

	movies, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Movie])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:movies: %w", err)
	}

	return movies, nil
}

func (r *MovieRepository) GetMovieByID(ctx context.Context, id int) (*model.Movie, error) {
	stmt := `SELECT ` + movieColumns + ` FROM movies WHERE id = @id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get movie query for id=%d: %w", id, err)
	}

	return collectMovie(rows, id)
}

func (r *MovieRepository) CreateMovie(ctx context.Context, movie model.Movie) (*model.Movie, error) {
	stmt := `
		INSERT INTO movies (title, release)
		VALUES (@title, @release)
		RETURNING ` + movieColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"title":   movie.Title,
		"release": movie.Release,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create movie query: %w", err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Movie])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:movies: %w", err)
	}

	return created, nil
}

func (r *MovieRepository) UpdateMovie(ctx context.Context, id int, patch model.MoviePatch) (*model.Movie, error) {
	if patch.IsEmpty() {
		return r.GetMovieByID(ctx, id)
	}

	stmt := `
		UPDATE movies
		SET title   = COALESCE(@title, title),
		    release = COALESCE(@release, release)
		WHERE id = @id
		RETURNING ` + movieColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":      id,
		"title":   patch.Title,
		"release": patch.Release,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute update movie query for id=%d: %w", id, err)
	}

	return collectMovie(rows, id)
}

func (r *MovieRepository) DeleteMovie(ctx context.Context, id int) error {
	stmt := `DELETE FROM movies WHERE id = @id`

	tag, err := r.server.DB.Pool.Exec(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to execute delete movie query for id=%d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return sqlerr.WrapNotFound(moviesTable, pgx.ErrNoRows)
	}

	return nil
}

func collectMovie(rows pgx.Rows, id int) (*model.Movie, error) {
	movie, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.WrapNotFound(moviesTable, err)
		}
		return nil, fmt.Errorf("failed to collect movie id=%d: %w", id, err)
	}
	return movie, nil
}
