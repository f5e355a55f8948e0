package testutil

import (
	"context"

	"github.com/hibiken/asynq"

	workerHandler "github.com/satvik2131/lamars-truck-backend/internal/handler/worker"
	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/task"
	recordSvc "github.com/satvik2131/lamars-truck-backend/internal/usecase/record"
)

// StartWorker starts an asynq worker removing orphaned images from store.
// It returns a function to gracefully shut down the worker.
func StartWorker(store port.MediaStore, redisAddr string) func() {
	svc := recordSvc.NewOrphanRemover(store)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeRemoveOrphans, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseRemoveOrphansPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.RemoveOrphansHandler(ctx, p, svc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 2})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
