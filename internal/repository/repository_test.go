package repository

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/casting-agency/internal/database"
	"github.com/deppfellow/casting-agency/internal/errs"
	"github.com/deppfellow/casting-agency/internal/model"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/deppfellow/casting-agency/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer connects to AGENCY_TEST_DATABASE_URL, migrates it and empties
// the catalog tables. Tests are skipped when the variable is unset.
func testServer(t *testing.T) *server.Server {
	t.Helper()

	dsn := os.Getenv("AGENCY_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("AGENCY_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := zerolog.Nop()
	require.NoError(t, database.MigrateDSN(ctx, &logger, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE actors, movies RESTART IDENTITY`)
	require.NoError(t, err)

	return &server.Server{DB: &database.Database{Pool: pool}, Logger: &logger}
}

func asStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := sqlerr.HandleError(err).(*errs.HTTPError)
	require.True(t, ok)
	return httpErr.Status
}

func TestActorRepository(t *testing.T) {
	s := testServer(t)
	repo := NewActorRepository(s)
	ctx := context.Background()

	actors, err := repo.ListActors(ctx)
	require.NoError(t, err)
	assert.Empty(t, actors)

	created, err := repo.CreateActor(ctx, model.Actor{Name: "Ana", Age: "36", Gender: "female"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	name := "Ana de Armas"
	updated, err := repo.UpdateActor(ctx, created.ID, model.ActorPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana de Armas", updated.Name)
	assert.Equal(t, "36", updated.Age)

	unchanged, err := repo.UpdateActor(ctx, created.ID, model.ActorPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Ana de Armas", unchanged.Name)

	_, err = repo.GetActorByID(ctx, 999)
	assert.Equal(t, http.StatusNotFound, asStatus(t, err))

	_, err = repo.UpdateActor(ctx, 999, model.ActorPatch{Name: &name})
	assert.Equal(t, http.StatusNotFound, asStatus(t, err))

	free, err := repo.CreateActor(ctx, model.Actor{Name: "", Age: "two hundred", Gender: ""})
	require.NoError(t, err)
	assert.Equal(t, "two hundred", free.Age)

	require.NoError(t, repo.DeleteActor(ctx, created.ID))
	assert.Equal(t, http.StatusNotFound, asStatus(t, repo.DeleteActor(ctx, created.ID)))
}

func TestMovieRepository(t *testing.T) {
	s := testServer(t)
	repo := NewMovieRepository(s)
	ctx := context.Background()

	created, err := repo.CreateMovie(ctx, model.Movie{Title: "Devil Wears Prada", Release: "June 30, 2006"})
	require.NoError(t, err)
	assert.Equal(t, "June 30, 2006", created.Release)

	release := "2006-06-30"
	updated, err := repo.UpdateMovie(ctx, created.ID, model.MoviePatch{Release: &release})
	require.NoError(t, err)
	assert.Equal(t, "Devil Wears Prada", updated.Title)
	assert.Equal(t, "2006-06-30", updated.Release)

	movies, err := repo.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, created.ID, movies[0].ID)

	got, err := repo.GetMovieByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Release, got.Release)

	require.NoError(t, repo.DeleteMovie(ctx, created.ID))
	_, err = repo.GetMovieByID(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, asStatus(t, err))
}
