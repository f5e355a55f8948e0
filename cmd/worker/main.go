package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/satvik2131/lamars-truck-backend/internal/config"
	workerHandler "github.com/satvik2131/lamars-truck-backend/internal/handler/worker"
	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/storage"
	"github.com/satvik2131/lamars-truck-backend/internal/task"
	recordSvc "github.com/satvik2131/lamars-truck-backend/internal/usecase/record"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	strg := initStorage(ctx, cfg)
	removeSvc := recordSvc.NewOrphanRemover(strg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeRemoveOrphans, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseRemoveOrphansPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.RemoveOrphansHandler(ctx, p, removeSvc)
	})

	runWorker(ctx, mux, cfg)
}

func initStorage(ctx context.Context, cfg *config.Settings) port.MediaStore {
	switch cfg.MediaStore {
	case config.MediaStoreMinio:
		client, err := storage.NewMinioClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
			os.Exit(1)
		}
		strg, err := client.WithBucket(ctx, cfg.MinioBucket, cfg.MediaFolder)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.MinioBucket, err)
			os.Exit(1)
		}
		return strg

	case config.MediaStoreS3:
		strg, err := storage.NewS3Storage(ctx, cfg.S3Region, cfg.S3Bucket, cfg.MediaFolder)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize S3 client: %v", err)
			os.Exit(1)
		}
		return strg

	default:
		strg, err := storage.NewCloudinaryStorage(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret, cfg.MediaFolder)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize Cloudinary client: %v", err)
			os.Exit(1)
		}
		return strg
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 4})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// stop accepting new tasks and wait for in-flight ones
	done := make(chan struct{})
	go func() {
		srv.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		logger.Warn(ctx, "⚠️  Worker shutdown timed out")
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
