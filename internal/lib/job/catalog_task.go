package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskCatalogChange is the asynq task type for catalog notifications.
	TaskCatalogChange = "catalog:change"
)

// Catalog change actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogChangePayload is the JSON payload of a TaskCatalogChange task.
type CatalogChangePayload struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         int       `json:"id"`
	Label      string    `json:"label,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCatalogChangeTask builds a task on the low queue: notifications are
// informational and must never delay more important work.
func NewCatalogChangeTask(p CatalogChangePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskCatalogChange,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
