// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as authentication (JWKS-verified bearer tokens), permission
// checks, request logging, metrics, CORS, rate limiting, and panic recovery
package middleware
