// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when one is present), loads them into structured Go types, and
// validates that required values are present so they can be reused
// across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (auth cache, observability).
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any of the code below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable must carry.
//
// Keys are lowercased after the prefix is removed and nested with ".",
// e.g. AGENCY_SERVER.PORT -> server.port -> Config.Server.Port
const EnvPrefix = "AGENCY_"

// ServiceName tags logs, traces and metrics emitted by this service.
const ServiceName = "casting-agency"

// listKeys are the comma-separated env values decoded into string slices.
var listKeys = map[string]struct{}{
	"server.cors_allowed_origins":        {},
	"observability.health_checks.checks": {},
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"required"` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and to switch behavior (e.g. "local" enables SQL logging).
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained number of requests per second allowed per
	// client IP. Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`

	// RateLimitBurst is the number of requests a client may send at once
	// before RateLimit applies.
	RateLimitBurst int `koanf:"rate_limit_burst" validate:"gte=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port". Redis backs the job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig describes the identity provider that issues access tokens.
//
// Domain is the tenant domain (e.g. "agency.eu.auth0.com"). Issuer and
// JWKSURL are derived from it unless set explicitly, which is mostly
// useful for tests and self-hosted issuers.
type AuthConfig struct {
	Domain   string `koanf:"domain" validate:"required"`
	Audience string `koanf:"audience" validate:"required"`
	Issuer   string `koanf:"issuer" validate:"omitempty,url"`
	JWKSURL  string `koanf:"jwks_url" validate:"omitempty,url"`

	// JWKSCacheTTL is how long fetched signing keys are reused.
	JWKSCacheTTL time.Duration `koanf:"jwks_cache_ttl"`

	// ClockSkew is the leeway applied to exp/nbf/iat checks.
	ClockSkew time.Duration `koanf:"clock_skew"`
}

// IntegrationConfig holds credentials for third-party integrations.
//
// Every field is optional: catalog notifications are only sent when
// both ResendAPIKey and NotificationEmail are set.
type IntegrationConfig struct {
	ResendAPIKey      string `koanf:"resend_api_key"`
	NotificationEmail string `koanf:"notification_email" validate:"omitempty,email"`
	SenderEmail       string `koanf:"sender_email" validate:"omitempty,email"`
}

// NotificationsEnabled reports whether catalog change emails should be sent.
func (i IntegrationConfig) NotificationsEnabled() bool {
	return i.ResendAPIKey != "" && i.NotificationEmail != ""
}

// IssuerURL returns the expected `iss` claim. Auth0 issuers end with a slash.
func (a AuthConfig) IssuerURL() string {
	if a.Issuer != "" {
		return a.Issuer
	}
	return fmt.Sprintf("https://%s/", strings.TrimSuffix(a.Domain, "/"))
}

// JWKSEndpoint returns the URL of the issuer's JSON Web Key Set.
func (a AuthConfig) JWKSEndpoint() string {
	if a.JWKSURL != "" {
		return a.JWKSURL
	}
	return strings.TrimSuffix(a.IssuerURL(), "/") + "/.well-known/jwks.json"
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults, and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix AGENCY_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into Config
//   - Validates required config blocks/fields
//   - Fills auth defaults and checks the derived URLs parse
//   - Sets default observability if missing and validates it
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if _, ok := listKeys[key]; ok {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Observability starts from the defaults so a partial env block only
	// overrides the keys it names.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}

	// "" unmarshals everything from the root.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Auth.JWKSCacheTTL <= 0 {
		mainConfig.Auth.JWKSCacheTTL = 5 * time.Minute
	}
	if mainConfig.Auth.ClockSkew <= 0 {
		mainConfig.Auth.ClockSkew = 30 * time.Second
	}
	for _, raw := range []string{mainConfig.Auth.IssuerURL(), mainConfig.Auth.JWKSEndpoint()} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("invalid auth url %q: %w", raw, err)
		}
	}

	if mainConfig.Integration.SenderEmail == "" {
		mainConfig.Integration.SenderEmail = "onboarding@resend.dev"
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not user-configurable so every
	// signal is tagged consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
