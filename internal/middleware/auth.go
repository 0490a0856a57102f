package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/deppfellow/casting-agency/internal/errs"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/labstack/echo/v4"
	jose "gopkg.in/go-jose/go-jose.v2"
	"gopkg.in/go-jose/go-jose.v2/jwt"
)

const (
	// PermissionsKey holds the token's permissions in Echo context.
	PermissionsKey = "permissions"

	// ClaimsKey holds the *validator.ValidatedClaims in Echo context.
	ClaimsKey = "claims"
)

// Permissions granted by the identity provider.
const (
	PermissionPostActors  = "post:actors"
	PermissionPatchActor  = "patch:actor"
	PermissionDeleteActor = "delete:actor"
	PermissionPostMovies  = "post:movies"
	PermissionPatchMovie  = "patch:movie"
	PermissionDeleteMovie = "delete:movie"
)

// CustomClaims carries the RBAC permissions the identity provider adds to
// access tokens. A nil Permissions means the claim was absent.
type CustomClaims struct {
	Permissions []string `json:"permissions"`
}

func (c *CustomClaims) Validate(context.Context) error {
	return nil
}

// TokenValidator verifies a raw JWT and returns its claims.
// *validator.Validator implements it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (interface{}, error)
}

// KeySetFunc returns the identity provider's published signing keys as a
// *jose.JSONWebKeySet. (*jwks.CachingProvider).KeyFunc implements it.
type KeySetFunc func(ctx context.Context) (interface{}, error)

// AuthMiddleware verifies bearer tokens and enforces permissions.
type AuthMiddleware struct {
	server    *server.Server
	validator TokenValidator
	keys      KeySetFunc
}

// NewAuthMiddleware builds a JWKS-backed RS256 validator for the configured
// issuer and audience. Signing keys are cached for Auth.JWKSCacheTTL.
func NewAuthMiddleware(s *server.Server) (*AuthMiddleware, error) {
	authCfg := s.Config.Auth

	issuerURL, err := url.Parse(authCfg.IssuerURL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse issuer URL: %w", err)
	}

	jwksURL, err := url.Parse(authCfg.JWKSEndpoint())
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWKS URL: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, authCfg.JWKSCacheTTL, jwks.WithCustomJWKSURI(jwksURL))

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{authCfg.Audience},
		validator.WithAllowedClockSkew(authCfg.ClockSkew),
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the token validator: %w", err)
	}

	return &AuthMiddleware{server: s, validator: jwtValidator, keys: provider.KeyFunc}, nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(header string) (string, *errs.HTTPError) {
	if header == "" {
		return "", authError("AUTHORIZATION_HEADER_MISSING", "Authorization header not found.")
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return "", authError("INVALID_HEADER", "Invalid token header.")
	}

	if strings.ToLower(parts[0]) != "bearer" {
		return "", authError("INVALID_HEADER", "Invalid token type.")
	}

	if parts[1] == "" {
		return "", authError("INVALID_HEADER", "Empty Bearer token value.")
	}

	return parts[1], nil
}

func authError(code, message string) *errs.HTTPError {
	err := errs.NewUnauthorizedError(message, true)
	err.Code = code
	return err
}

// tokenError reports a token that was sent but cannot be processed.
func tokenError(code, message string) *errs.HTTPError {
	return errs.NewUnprocessableEntityError(message, true, &code, nil)
}

// checkKeyID makes sure the token names a key the provider publishes.
//
//   - unparsable token:        422 INVALID_TOKEN
//   - no "kid" header:         422 INVALID_HEADER
//   - key set unavailable:     422 INVALID_AUTH_API
//   - kid not in the key set:  401 INVALID_KEY
func (auth *AuthMiddleware) checkKeyID(ctx context.Context, token string) (*errs.HTTPError, error) {
	parsed, err := jwt.ParseSigned(token)
	if err != nil || len(parsed.Headers) == 0 {
		return tokenError("INVALID_TOKEN", "Token is invalid."), err
	}

	kid := parsed.Headers[0].KeyID
	if kid == "" {
		return tokenError("INVALID_HEADER", `Missing "kid" header.`), nil
	}

	keys, err := auth.keys(ctx)
	if err != nil {
		return tokenError("INVALID_AUTH_API", "Invalid authorization API."), err
	}

	set, ok := keys.(*jose.JSONWebKeySet)
	if !ok {
		return tokenError("INVALID_AUTH_API", "Invalid authorization API."), fmt.Errorf("unexpected key set type %T", keys)
	}

	if len(set.Key(kid)) == 0 {
		return authError("INVALID_KEY", "Unable to find the appropriate key."), fmt.Errorf("no published key with kid %q", kid)
	}

	return nil, nil
}

// RequireAuth verifies the bearer token and stores the subject and
// permissions on the request. An expired token or an unknown signing key
// answers 401; any other unusable token answers 422.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := GetLogger(c)

		token, headerErr := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if headerErr != nil {
			logger.Warn().
				Str("function", "RequireAuth").
				Str("reason", headerErr.Code).
				Dur("duration", time.Since(start)).
				Msg("rejected request without a usable bearer token")
			return headerErr
		}

		if keyErr, err := auth.checkKeyID(c.Request().Context(), token); keyErr != nil {
			logger.Warn().
				Err(err).
				Str("function", "RequireAuth").
				Str("reason", keyErr.Code).
				Dur("duration", time.Since(start)).
				Msg("token signing key rejected")
			return keyErr
		}

		validated, err := auth.validator.ValidateToken(c.Request().Context(), token)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("token verification failed")

			if errors.Is(err, jwt.ErrExpired) {
				return authError("TOKEN_EXPIRED", "Token has expired.")
			}
			return tokenError("INVALID_TOKEN", "Token is invalid.")
		}

		claims, ok := validated.(*validator.ValidatedClaims)
		if !ok {
			return tokenError("INVALID_TOKEN", "Token is invalid.")
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.RegisteredClaims.Subject)
		if custom, ok := claims.CustomClaims.(*CustomClaims); ok && custom.Permissions != nil {
			c.Set(PermissionsKey, custom.Permissions)
		}

		withUser(c, claims.RegisteredClaims.Subject)

		GetLogger(c).Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

// RequirePermission rejects requests whose token does not grant permission.
// It must run after RequireAuth.
//
//   - no permissions claim: 422 INVALID_PAYLOAD
//   - permission missing:   403
func (auth *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			permissions, ok := c.Get(PermissionsKey).([]string)
			if !ok {
				code := "INVALID_PAYLOAD"
				return errs.NewUnprocessableEntityError("Invalid payload.", true, &code, nil)
			}

			if !slices.Contains(permissions, permission) {
				GetLogger(c).Warn().
					Str("permission", permission).
					Strs("granted", permissions).
					Msg("permission denied")
				return errs.NewForbiddenError("Request is forbidden.", true)
			}

			return next(c)
		}
	}
}

// GetPermissions returns the permissions of the authenticated caller.
func GetPermissions(c echo.Context) []string {
	permissions, _ := c.Get(PermissionsKey).([]string)
	return permissions
}
