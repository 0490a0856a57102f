package middleware

import (
	"github.com/deppfellow/casting-agency/internal/server"
)

// Middlewares groups every middleware component so the router receives a
// single dependency.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
	Metrics         *MetricsMiddleware
}

// NewMiddlewares constructs all middleware components. It fails only when
// the token validator cannot be built from the auth config.
func NewMiddlewares(s *server.Server) (*Middlewares, error) {
	auth, err := NewAuthMiddleware(s)
	if err != nil {
		return nil, err
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            auth,
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
		Metrics:         NewMetricsMiddleware(),
	}, nil
}
