package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Monitor runs a Checker on a cron schedule and logs state transitions.
// Every failing run is logged at warn level; recovery is logged once.
type Monitor struct {
	checker  *Checker
	logger   *zerolog.Logger
	cron     *cron.Cron
	interval time.Duration

	mu      sync.Mutex
	healthy bool
	last    Report
	onCheck func(Report)
}

func NewMonitor(checker *Checker, interval time.Duration, logger *zerolog.Logger) *Monitor {
	return &Monitor{
		checker:  checker,
		logger:   logger,
		interval: interval,
		healthy:  true,
		cron: cron.New(
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
}

// OnCheck registers fn to be called with every report. Used for metrics.
func (m *Monitor) OnCheck(fn func(Report)) {
	m.onCheck = fn
}

// Start schedules the checks. It returns immediately.
func (m *Monitor) Start() error {
	spec := fmt.Sprintf("@every %s", m.interval)
	if _, err := m.cron.AddFunc(spec, m.runOnce); err != nil {
		return fmt.Errorf("failed to schedule health monitor: %w", err)
	}

	m.cron.Start()
	m.logger.Info().Dur("interval", m.interval).Msg("health monitor started")
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	m.logger.Info().Msg("health monitor stopped")
}

// Last returns the most recent report.
func (m *Monitor) Last() Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *Monitor) runOnce() {
	report := m.checker.Check(context.Background())

	m.mu.Lock()
	wasHealthy := m.healthy
	m.healthy = report.Healthy()
	m.last = report
	m.mu.Unlock()

	switch {
	case !report.Healthy():
		m.logger.Warn().
			Strs("failing", report.Failing()).
			Interface("checks", report.Checks).
			Msg("dependency health check failed")
	case !wasHealthy:
		m.logger.Info().Msg("dependencies recovered")
	}

	if m.onCheck != nil {
		m.onCheck(report)
	}
}
