package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObservabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *ObservabilityConfig) {},
		},
		{
			name:    "missing service name",
			mutate:  func(c *ObservabilityConfig) { c.ServiceName = "" },
			wantErr: "service_name is required",
		},
		{
			name:    "unknown level",
			mutate:  func(c *ObservabilityConfig) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "unknown format",
			mutate:  func(c *ObservabilityConfig) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
		{
			name:    "negative slow query threshold",
			mutate:  func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second },
			wantErr: "slow_query_threshold",
		},
		{
			name:    "interval too short",
			mutate:  func(c *ObservabilityConfig) { c.HealthChecks.Interval = 10 * time.Millisecond },
			wantErr: "interval",
		},
		{
			name: "short interval is fine when monitor is disabled",
			mutate: func(c *ObservabilityConfig) {
				c.HealthChecks.Enabled = false
				c.HealthChecks.Interval = 0
			},
		},
		{
			name:    "unknown check",
			mutate:  func(c *ObservabilityConfig) { c.HealthChecks.Checks = []string{"database", "kafka"} },
			wantErr: "unknown health check: kafka",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultObservabilityConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()

	cfg.Environment = "production"
	cfg.Logging.Level = ""
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.True(t, cfg.IsProduction())

	cfg.Environment = "local"
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.False(t, cfg.IsProduction())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}
