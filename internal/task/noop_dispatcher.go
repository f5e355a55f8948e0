package task

import (
	"context"

	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

// NoopDispatcher drops orphan removal requests; the orphans stay in the
// media store and are only visible in the logs.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueRemoveOrphans(ctx context.Context, keys []string) error {
	return nil
}
