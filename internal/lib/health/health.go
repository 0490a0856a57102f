// Package health checks the service's dependencies.
//
// A Checker runs named probes (database, redis) with a timeout and builds a
// Report. The /status endpoint and the background Monitor share it.
package health

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Probe checks one dependency. A nil error means healthy.
type Probe func(ctx context.Context) error

// CheckResult is the outcome of one probe.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// Report is the combined outcome of every probe.
type Report struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// Healthy reports whether every probe passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Failing returns the names of failed checks, sorted.
func (r Report) Failing() []string {
	var names []string
	for name, result := range r.Checks {
		if result.Status != StatusHealthy {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

type Checker struct {
	environment string
	timeout     time.Duration
	probes      map[string]Probe
}

// NewChecker builds a checker. Only probes named in enabled are run.
func NewChecker(environment string, timeout time.Duration, enabled []string, available map[string]Probe) *Checker {
	probes := make(map[string]Probe, len(enabled))
	for _, name := range enabled {
		if probe, ok := available[name]; ok {
			probes[name] = probe
		}
	}
	return &Checker{environment: environment, timeout: timeout, probes: probes}
}

// Check runs every probe concurrently, each bounded by the checker timeout.
func (c *Checker) Check(ctx context.Context) Report {
	report := Report{
		Status:      StatusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: c.environment,
		Checks:      make(map[string]CheckResult, len(c.probes)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for name, probe := range c.probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := c.run(ctx, probe)

			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = result
			if result.Status != StatusHealthy {
				report.Status = StatusUnhealthy
			}
		}()
	}
	wg.Wait()

	return report
}

func (c *Checker) run(ctx context.Context, probe Probe) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := probe(ctx)
	result := CheckResult{Status: StatusHealthy, ResponseTime: time.Since(start).String()}
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
	}
	return result
}
