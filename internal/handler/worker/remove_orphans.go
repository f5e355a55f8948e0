package worker

import (
	"context"

	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/task"
)

// RemoveOrphansHandler handles a remove-orphans task.
// It converts the incoming task payload to the input expected by
// the port.OrphanRemover service and delegates the call.
func RemoveOrphansHandler(ctx context.Context, p task.RemoveOrphansPayload, svc port.OrphanRemover) error {
	if len(p.Keys) == 0 {
		logger.Warn(ctx, "⚠️  Remove-orphans task without keys, skipping")
		return nil
	}

	in := port.RemoveOrphansInput{Keys: p.Keys}
	if err := svc.RemoveOrphans(ctx, in); err != nil {
		logger.Errorf(ctx, "❌  Failed to remove %d orphaned image(s): %v", len(p.Keys), err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully removed %d orphaned image(s)", len(p.Keys))
	return nil
}
