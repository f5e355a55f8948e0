package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/satvik2131/lamars-truck-backend/internal/cache"
	"github.com/satvik2131/lamars-truck-backend/internal/config"
	"github.com/satvik2131/lamars-truck-backend/internal/db"
	"github.com/satvik2131/lamars-truck-backend/internal/handler/api"
	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	cMiddleware "github.com/satvik2131/lamars-truck-backend/internal/middleware"
	"github.com/satvik2131/lamars-truck-backend/internal/model"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/renderer"
	"github.com/satvik2131/lamars-truck-backend/internal/repository/mariadb"
	"github.com/satvik2131/lamars-truck-backend/internal/repository/mongodb"
	"github.com/satvik2131/lamars-truck-backend/internal/storage"
	"github.com/satvik2131/lamars-truck-backend/internal/task"
	recordSvc "github.com/satvik2131/lamars-truck-backend/internal/usecase/record"
)

const mongoPingTimeout = 5 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	// closers run in reverse order once the server has stopped
	var closers []func() error

	repo, closeRepo := initRepository(ctx, cfg)
	closers = append(closers, closeRepo)

	strg := initStorage(ctx, cfg)

	var ca port.Cache
	var dispatcher port.TaskDispatcher = task.NewNoopDispatcher()
	if cfg.RedisAddr != "" {
		c := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		closers = append(closers, c.Close)
		ca = c
		logger.Info(ctx, "✅  Redis cache enabled")
		if cfg.OrphanCleanup {
			d := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
			closers = append(closers, d.Close)
			dispatcher = d
			logger.Info(ctx, "✅  Orphan cleanup enabled")
		}
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured, caching is disabled")
	}
	if !cfg.OrphanCleanup {
		logger.Warn(ctx, "⚠️  Orphan cleanup disabled, images of failed uploads stay in the media store")
	}

	creator := recordSvc.NewRecordCreator(cfg.Variant, strg, repo, ca, dispatcher)
	lister := recordSvc.NewRecordLister(repo)
	rend := renderer.NewHTTPRenderer(ca, cfg.ListCacheTTL)

	r := initRouter(ctx, cfg.Variant)
	registerRoutes(r, cfg.Variant, cfg.MultipartMaxMemory, creator, lister, rend)

	listenRouter(ctx, r, cfg, closers)
}

func initRepository(ctx context.Context, cfg *config.Settings) (port.RecordRepository, func() error) {
	switch cfg.MetadataStore {
	case config.MetadataStoreMariaDB:
		logger.Info(ctx, "initialising database...")
		database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
			os.Exit(1)
		}
		return mariadb.NewRecordRepository(database.DB), database.Close

	default:
		logger.Info(ctx, "initialising mongodb client...")
		m, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to create mongodb client: %v", err)
			os.Exit(1)
		}
		// the driver connects lazily; an unreachable server is not fatal
		go func() {
			if err := m.Ping(ctx, mongoPingTimeout); err != nil {
				logger.Errorf(ctx, "❌  MongoDB is not reachable yet: %v", err)
				return
			}
			logger.Info(ctx, "✅  Connected to MongoDB")
		}()
		closeFn := func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return m.Close(closeCtx)
		}
		return mongodb.NewRecordRepository(m.Collection), closeFn
	}
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

func initRouter(ctx context.Context, layout model.URLLayout) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(cMiddleware.Recoverer)
	if layout == model.LayoutMulti {
		r.Use(cMiddleware.CORS())
	}
	r.Use(cMiddleware.ParseBody(cMiddleware.DefaultBodyLimit))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func registerRoutes(r chi.Router, layout model.URLLayout, maxMemory int64, creator port.RecordCreator, lister port.RecordLister, rend port.HTTPRenderer) {
	upload := api.UploadRecordHandler(creator, layout, maxMemory)
	list := api.ListRecordsHandler(rend, lister)

	if layout == model.LayoutMulti {
		r.Post("/api/truck/data", upload)
		r.Get("/api/truck/data", list)
		return
	}
	r.Post("/upload", upload)
	r.Get("/data", list)
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, closers []func() error) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API (%s variant) listening on %s", cfg.Variant, srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warnf(ctx, "close error: %v", err)
		}
	}
}
