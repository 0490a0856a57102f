package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/casting-agency/internal/config"
	"github.com/deppfellow/casting-agency/internal/errs"
	"github.com/deppfellow/casting-agency/internal/handler"
	"github.com/deppfellow/casting-agency/internal/lib/health"
	"github.com/deppfellow/casting-agency/internal/lib/job"
	"github.com/deppfellow/casting-agency/internal/middleware"
	"github.com/deppfellow/casting-agency/internal/model"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/deppfellow/casting-agency/internal/service"
	"github.com/deppfellow/casting-agency/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router   *echo.Echo
	issuer   *testutil.Issuer
	actors   *testutil.ActorStore
	movies   *testutil.MovieStore
	notifier *testutil.Notifier
	dbErr    error
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	api := &testAPI{
		issuer: testutil.NewIssuer(t),
		actors: testutil.NewActorStore(
			model.Actor{Name: "Ana de Armas", Age: "36", Gender: "female"},
			model.Actor{Name: "Keanu Reeves", Age: "60", Gender: "male"},
		),
		movies: testutil.NewMovieStore(
			model.Movie{Title: "Knives Out", Release: "2019-11-27"},
		),
		notifier: &testutil.Notifier{},
	}

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{"*"},
		},
		Auth: config.AuthConfig{
			Domain:       "agency.test",
			Audience:     testutil.Audience,
			Issuer:       api.issuer.URL(),
			JWKSURL:      api.issuer.JWKSURL(),
			JWKSCacheTTL: time.Minute,
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	s := &server.Server{Config: cfg, Logger: &logger}
	s.Health = health.NewChecker("test", time.Second, []string{"database"}, map[string]health.Probe{
		"database": func(context.Context) error { return api.dbErr },
	})

	services := &service.Services{
		Actor: service.NewActorService(api.actors, api.notifier),
		Movie: service.NewMovieService(api.movies, api.notifier),
	}

	mw, err := middleware.NewMiddlewares(s)
	require.NoError(t, err)

	api.router = NewRouter(s, handler.NewHandlers(s, services), mw)
	return api
}

func (api *testAPI) token(t *testing.T, permissions ...string) string {
	return api.issuer.Token(t, testutil.TokenOptions{Permissions: permissions})
}

func (api *testAPI) do(method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, testutil.Bearer(token))
	}

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestActorRoutes(t *testing.T) {
	api := newTestAPI(t)

	t.Run("list", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/actors", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[model.ActorsResponse](t, rec)
		assert.True(t, body.Success)
		require.Len(t, body.Actors, 2)
		assert.Equal(t, "Ana de Armas", body.Actors[0].Name)
	})

	t.Run("get", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/actors/2", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Keanu Reeves", decode[model.ActorResponse](t, rec).Actor.Name)
	})

	t.Run("get missing", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/actors/99", "", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Actor not found", decode[errs.ErrorResponse](t, rec).Message)
	})

	t.Run("get with a non-numeric id", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/actors/abc", "", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "id", decode[errs.ErrorResponse](t, rec).Errors[0].Field)
	})

	t.Run("get with a non-positive id", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/actors/0", "", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ID", decode[errs.ErrorResponse](t, rec).Code)
	})

	t.Run("trailing slash", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/actors/", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[model.ActorsResponse](t, rec).Actors, 2)
	})

	t.Run("create needs a token", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/add-actor", "", `{"name":"Zoe","age":"30","gender":"female"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create needs the permission", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/add-actor", api.token(t, middleware.PermissionPostMovies), `{"name":"Zoe","age":"30","gender":"female"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("create", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/add-actor", api.token(t, middleware.PermissionPostActors), `{"name":"Leonardo Di Caprio","age":"45","gender":"male"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[model.ActorResponse](t, rec)
		assert.True(t, body.Success)
		assert.Equal(t, 3, body.Actor.ID)
		assert.Equal(t, "45", body.Actor.Age)
	})

	t.Run("create with empty values", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/add-actor", api.token(t, middleware.PermissionPostActors), `{"name":"","age":1,"gender":""}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"actor":{"id":4,"name":"","age":"1","gender":""}}`, rec.Body.String())
	})

	t.Run("create is not served on the collection", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/actors", api.token(t, middleware.PermissionPostActors), `{"name":"Zoe","age":"30","gender":"female"}`)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("create with missing fields", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/add-actor", api.token(t, middleware.PermissionPostActors), `{"name":"Zoe"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var fields []string
		for _, fe := range decode[errs.ErrorResponse](t, rec).Errors {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"age", "gender"}, fields)
	})

	t.Run("create with a malformed body", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/add-actor", api.token(t, middleware.PermissionPostActors), `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update with a string age", func(t *testing.T) {
		rec := api.do(http.MethodPatch, "/actors/1", api.token(t, middleware.PermissionPatchActor), `{"age":"37"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		actor := decode[model.ActorResponse](t, rec).Actor
		assert.Equal(t, "Ana de Armas", actor.Name)
		assert.Equal(t, "37", actor.Age)
	})

	t.Run("update skips empty and zero fields", func(t *testing.T) {
		rec := api.do(http.MethodPatch, "/actors/1", api.token(t, middleware.PermissionPatchActor), `{"name":"","age":0}`)
		require.Equal(t, http.StatusOK, rec.Code)

		actor := decode[model.ActorResponse](t, rec).Actor
		assert.Equal(t, "Ana de Armas", actor.Name)
		assert.Equal(t, "37", actor.Age)
	})

	t.Run("update ignores an id in the body", func(t *testing.T) {
		rec := api.do(http.MethodPatch, "/actors/1", api.token(t, middleware.PermissionPatchActor), `{"id":2,"gender":"female"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, decode[model.ActorResponse](t, rec).Actor.ID)
	})

	t.Run("update with a non-scalar age", func(t *testing.T) {
		rec := api.do(http.MethodPatch, "/actors/1", api.token(t, middleware.PermissionPatchActor), `{"age":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update missing", func(t *testing.T) {
		rec := api.do(http.MethodPatch, "/actors/99", api.token(t, middleware.PermissionPatchActor), `{"age":"30"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := api.do(http.MethodDelete, "/actors/2", api.token(t, middleware.PermissionDeleteActor), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"actor_id":2}`, rec.Body.String())

		rec = api.do(http.MethodDelete, "/actors/2", api.token(t, middleware.PermissionDeleteActor), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("writes are announced", func(t *testing.T) {
		var actions []string
		for _, e := range api.notifier.Events() {
			if e.Entity == "actor" {
				actions = append(actions, e.Action)
			}
		}
		assert.Equal(t, []string{job.ActionCreated, job.ActionCreated, job.ActionUpdated, job.ActionUpdated, job.ActionDeleted}, actions)
	})
}

func TestMovieRoutes(t *testing.T) {
	api := newTestAPI(t)

	t.Run("list", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/movies", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"release":"2019-11-27"`)
	})

	t.Run("create", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/add-movie", api.token(t, middleware.PermissionPostMovies), `{"title":"Devil Wears Prada","release":"June 30, 2006"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		movie := decode[model.MovieResponse](t, rec).Movie
		assert.Equal(t, 2, movie.ID)
		assert.Equal(t, "June 30, 2006", movie.Release)
	})

	t.Run("create is not served on the collection", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/movies", api.token(t, middleware.PermissionPostMovies), `{"title":"Dune","release":"2021"}`)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("create with a missing release", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/add-movie", api.token(t, middleware.PermissionPostMovies), `{"title":"Dune"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "release", decode[errs.ErrorResponse](t, rec).Errors[0].Field)
	})

	t.Run("update", func(t *testing.T) {
		rec := api.do(http.MethodPatch, "/movies/1", api.token(t, middleware.PermissionPatchMovie), `{"title":"","release":"September 7, 2019"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		movie := decode[model.MovieResponse](t, rec).Movie
		assert.Equal(t, "Knives Out", movie.Title)
		assert.Equal(t, "September 7, 2019", movie.Release)
	})

	t.Run("delete needs its own permission", func(t *testing.T) {
		rec := api.do(http.MethodDelete, "/movies/1", api.token(t, middleware.PermissionDeleteActor), "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := api.do(http.MethodDelete, "/movies/1", api.token(t, middleware.PermissionDeleteMovie), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"movie_id":1}`, rec.Body.String())
	})

	t.Run("empty catalog", func(t *testing.T) {
		rec := api.do(http.MethodDelete, "/movies/2", api.token(t, middleware.PermissionDeleteMovie), "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = api.do(http.MethodGet, "/movies", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSystemRoutes(t *testing.T) {
	api := newTestAPI(t)

	t.Run("healthy", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/status", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		report := decode[health.Report](t, rec)
		assert.Equal(t, health.StatusHealthy, report.Status)
		assert.Contains(t, report.Checks, "database")
	})

	t.Run("unhealthy", func(t *testing.T) {
		api.dbErr = errors.New("connection refused")
		defer func() { api.dbErr = nil }()

		rec := api.do(http.MethodGet, "/status", "", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "connection refused", decode[health.Report](t, rec).Checks["database"].Error)
	})

	t.Run("metrics", func(t *testing.T) {
		api.do(http.MethodGet, "/actors", "", "")

		rec := api.do(http.MethodGet, "/metrics", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `agency_http_requests_total{method="GET",route="/actors",status="200"}`)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/directors", "", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", decode[errs.ErrorResponse](t, rec).Message)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := api.do(http.MethodPut, "/actors/1", "", `{}`)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "Method not allowed", decode[errs.ErrorResponse](t, rec).Message)
	})

	t.Run("trailing slash on an item", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/movies/1/", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Knives Out", decode[model.MovieResponse](t, rec).Movie.Title)
	})

	t.Run("request id", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/actors", "", "")
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})
}
