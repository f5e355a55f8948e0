package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeRemoveOrphans = "media:remove_orphans"

// RemoveOrphansPayload lists media store keys no record refers to.
type RemoveOrphansPayload struct {
	Keys []string `json:"keys"`
}

// NewRemoveOrphansTask creates an Asynq task removing the given keys.
func NewRemoveOrphansTask(keys []string) (*asynq.Task, error) {
	p := RemoveOrphansPayload{Keys: keys}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal remove-orphans payload: %w", err)
	}
	return asynq.NewTask(TypeRemoveOrphans, data), nil
}

// ParseRemoveOrphansPayload parses the task payload to RemoveOrphansPayload.
func ParseRemoveOrphansPayload(t *asynq.Task) (RemoveOrphansPayload, error) {
	var p RemoveOrphansPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return RemoveOrphansPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
