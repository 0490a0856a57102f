// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/casting-agency/internal/config"
	"github.com/deppfellow/casting-agency/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server    *asynq.Server
	logger    *zerolog.Logger
	mailer    CatalogMailer
	recipient string
	enabled   bool
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks six of every ten worker slots.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:    client,
		server:    server,
		logger:    logger,
		recipient: cfg.Integration.NotificationEmail,
		enabled:   cfg.Integration.NotificationsEnabled(),
	}
}

// InitHandlers sets up the dependencies task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

// Mux returns the task routing table.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskCatalogChange, j.handleCatalogChangeTask)
	return mux
}

// Start starts the worker pool in the background. It returns once the
// workers are running.
func (j *JobService) Start() error {
	if !j.enabled {
		j.logger.Info().Msg("Catalog notifications disabled, background job server not started")
		return nil
	}

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}

	return nil
}

// NotifyCatalogChange enqueues a catalog change email. It is a no-op when
// notifications are not configured.
func (j *JobService) NotifyCatalogChange(ctx context.Context, p CatalogChangePayload) error {
	if !j.enabled {
		return nil
	}

	task, err := NewCatalogChangeTask(p)
	if err != nil {
		return fmt.Errorf("failed to build catalog change task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue catalog change task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued catalog change task")

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	if j.enabled {
		j.server.Shutdown()
	}
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
