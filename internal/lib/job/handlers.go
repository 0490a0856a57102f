package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/casting-agency/internal/lib/email"
	"github.com/hibiken/asynq"
)

// CatalogMailer sends catalog change emails. *email.Client implements it.
type CatalogMailer interface {
	SendCatalogChangeEmail(ctx context.Context, to string, change email.CatalogChange) error
}

// handleCatalogChangeTask emails the configured recipient about one change.
// Returning an error lets asynq retry the task.
func (j *JobService) handleCatalogChangeTask(ctx context.Context, t *asynq.Task) error {
	var p CatalogChangePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal catalog change payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskCatalogChange).
		Str("entity", p.Entity).
		Str("action", p.Action).
		Int("id", p.ID).
		Logger()

	logger.Info().Msg("Processing catalog change task")

	err := j.mailer.SendCatalogChangeEmail(ctx, j.recipient, email.CatalogChange{
		Entity:     p.Entity,
		Action:     p.Action,
		ID:         p.ID,
		Label:      p.Label,
		OccurredAt: p.OccurredAt,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to send catalog change email")
		return err
	}

	logger.Info().Msg("Successfully sent catalog change email")
	return nil
}
