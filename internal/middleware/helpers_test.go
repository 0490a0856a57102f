package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/casting-agency/internal/config"
	"github.com/deppfellow/casting-agency/internal/errs"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/deppfellow/casting-agency/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, iss *testutil.Issuer) *server.Server {
	t.Helper()

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
			JWKSCacheTTL: time.Minute,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
	if iss != nil {
		cfg.Auth.Issuer = iss.URL()
		cfg.Auth.JWKSURL = iss.JWKSURL()
	}

	return &server.Server{Config: cfg, Logger: &logger}
}

func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	return e
}

func do(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.ErrorResponse {
	t.Helper()

	var body errs.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
