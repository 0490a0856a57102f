package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/casting-agency/internal/errs"
	"github.com/deppfellow/casting-agency/internal/lib/job"
	"github.com/deppfellow/casting-agency/internal/model"
	"github.com/deppfellow/casting-agency/internal/sqlerr"
	"github.com/deppfellow/casting-agency/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(sqlerr.HandleError(err), &httpErr))
	return httpErr.Status
}

func TestActorService(t *testing.T) {
	ctx := context.Background()

	t.Run("empty catalog is not found", func(t *testing.T) {
		svc := NewActorService(testutil.NewActorStore(), nil)
		_, err := svc.ListActors(ctx)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("create, update and delete notify", func(t *testing.T) {
		notifier := &testutil.Notifier{}
		svc := NewActorService(testutil.NewActorStore(), notifier)

		actor, err := svc.CreateActor(ctx, &model.CreateActorRequest{Name: model.NewText("Ana"), Age: model.NewText("36"), Gender: model.NewText("female")})
		require.NoError(t, err)
		assert.Equal(t, 1, actor.ID)

		updated, err := svc.UpdateActor(ctx, &model.UpdateActorRequest{ActorID: model.ActorID{ID: 1}, Age: model.NewText("37"), Name: model.NewText("")})
		require.NoError(t, err)
		assert.Equal(t, "Ana", updated.Name)
		assert.Equal(t, "37", updated.Age)

		id, err := svc.DeleteActor(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, id)

		events := notifier.Events()
		require.Len(t, events, 3)
		assert.Equal(t, []string{job.ActionCreated, job.ActionUpdated, job.ActionDeleted},
			[]string{events[0].Action, events[1].Action, events[2].Action})
		assert.Equal(t, "actor", events[0].Entity)
		assert.Equal(t, "Ana", events[0].Label)
	})

	t.Run("empty patch does not notify", func(t *testing.T) {
		notifier := &testutil.Notifier{}
		svc := NewActorService(testutil.NewActorStore(model.Actor{Name: "Ana", Age: "36", Gender: "female"}), notifier)

		_, err := svc.UpdateActor(ctx, &model.UpdateActorRequest{ActorID: model.ActorID{ID: 1}})
		require.NoError(t, err)
		assert.Empty(t, notifier.Events())
	})

	t.Run("missing rows are not found", func(t *testing.T) {
		svc := NewActorService(testutil.NewActorStore(), nil)

		_, err := svc.GetActor(ctx, 5)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))

		_, err = svc.DeleteActor(ctx, 5)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("notification failure does not fail the write", func(t *testing.T) {
		notifier := &testutil.Notifier{Err: errors.New("redis down")}
		svc := NewActorService(testutil.NewActorStore(), notifier)

		_, err := svc.CreateActor(ctx, &model.CreateActorRequest{Name: model.NewText("Ana"), Age: model.NewText("36"), Gender: model.NewText("female")})
		assert.NoError(t, err)
		assert.Len(t, notifier.Events(), 1)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		store := testutil.NewActorStore()
		store.Err = errors.New("boom")
		svc := NewActorService(store, nil)

		_, err := svc.ListActors(ctx)
		assert.EqualError(t, err, "boom")
	})
}

func TestMovieService(t *testing.T) {
	ctx := context.Background()
	notifier := &testutil.Notifier{}
	svc := NewMovieService(testutil.NewMovieStore(), notifier)

	_, err := svc.ListMovies(ctx)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	movie, err := svc.CreateMovie(ctx, &model.CreateMovieRequest{Title: model.NewText("Heat"), Release: model.NewText("December 15, 1995")})
	require.NoError(t, err)
	assert.Equal(t, "December 15, 1995", movie.Release)

	updated, err := svc.UpdateMovie(ctx, &model.UpdateMovieRequest{MovieID: model.MovieID{ID: movie.ID}, Title: model.NewText("Heat (Director's Cut)"), Release: &model.Text{Value: "0", Zero: true}})
	require.NoError(t, err)
	assert.Equal(t, "Heat (Director's Cut)", updated.Title)
	assert.Equal(t, movie.Release, updated.Release)

	movies, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 1)

	id, err := svc.DeleteMovie(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, movie.ID, id)

	_, err = svc.GetMovie(ctx, movie.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	events := notifier.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "movie", events[2].Entity)
	assert.Equal(t, movie.ID, events[2].ID)
}
