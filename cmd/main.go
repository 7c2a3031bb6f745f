package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/caching"
	"github.com/NishantSagar12345/NextCellCRM/internal/config"
	"github.com/NishantSagar12345/NextCellCRM/internal/handlers"
	"github.com/NishantSagar12345/NextCellCRM/internal/jobs/background"
	"github.com/NishantSagar12345/NextCellCRM/internal/middleware"
	"github.com/NishantSagar12345/NextCellCRM/internal/repositories"
	"github.com/NishantSagar12345/NextCellCRM/internal/services"
	"github.com/NishantSagar12345/NextCellCRM/pkg/database"
	"github.com/NishantSagar12345/NextCellCRM/pkg/logger"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		_, _ = os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.App.Name,
	})
	if err != nil {
		_, _ = os.Stderr.WriteString("logger error: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.JWT.Secret == "" && cfg.JWT.JWKSURL == "" {
		cfg.JWT.Secret = random.String(32)
		log.Warn("JWT_SECRET not set, using a generated development secret; tokens will not survive a restart")
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL, cfg.Database.MaxConns, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, pool, log); err != nil {
			return err
		}
	}

	cache := caching.NewNoopCacheService()
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = caching.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable at startup, cache calls will fail open", zap.Error(err))
		}
		cache = caching.NewRedisCacheService(redisClient, cfg.Redis.CacheTTL, log.Named("cache"))
	}

	resolver, err := services.NewJWTTenantResolver(cfg.JWT, log.Named("auth"))
	if err != nil {
		return err
	}
	defer resolver.Close()

	// Repositories
	linkage := repositories.NewLinkage(cfg.Linkage.Policy, log.Named("linkage"))
	contactRepo := repositories.NewContactRepo(pool)
	dealRepo := repositories.NewDealRepo(pool, linkage)
	activityRepo := repositories.NewActivityRepo(pool)
	appointmentRepo := repositories.NewAppointmentRepo(pool, linkage)
	tenantRepo := repositories.NewTenantRepo(pool)

	// Services
	contactService := services.NewContactService(contactRepo, cache, log)
	dealService := services.NewDealService(dealRepo, cache, log)
	activityService := services.NewActivityService(activityRepo, cache, log)
	appointmentService := services.NewAppointmentService(appointmentRepo, cache, log)

	h := handlers.Handlers{
		Health:       handlers.NewHealthHandlers(pool, cache, log),
		Tenant:       handlers.NewTenantHandlers(),
		Contacts:     handlers.NewContactHandlers(contactService),
		Deals:        handlers.NewDealHandlers(dealService),
		Activities:   handlers.NewActivityHandlers(activityService),
		Appointments: handlers.NewAppointmentHandlers(appointmentService),
	}

	var scheduler *background.JobScheduler
	if cfg.Storage.Enabled() {
		storage, err := services.NewMinioStorageService(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
		if err != nil {
			return err
		}
		if err := storage.EnsureBucketExists(ctx, cfg.Storage.Bucket); err != nil {
			log.Warn("export bucket not ready", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		}

		exportService := services.NewExportService(contactRepo, dealRepo, activityRepo, appointmentRepo, tenantRepo, storage,
			services.ExportOptions{
				Bucket:      cfg.Storage.Bucket,
				URLExpiry:   cfg.Storage.URLExpiry,
				Concurrency: cfg.Export.Concurrency,
			}, log.Named("export"))
		h.Exports = handlers.NewExportHandlers(exportService)

		if cfg.Export.Interval > 0 {
			scheduler, err = background.NewJobScheduler(exportService, cfg.Export.Interval, log)
			if err != nil {
				return err
			}
			scheduler.Start()
		}
	}

	// Echo instance
	e := echo.New()
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	handlers.ConfigureEcho(e, log)

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(versionMiddleware.VersionHeader(versionMiddleware.GetCurrentVersion()))

	protected := []echo.MiddlewareFunc{
		middleware.TenantContext(resolver, log.Named("auth")),
		middleware.TenantRateLimit(cache, cfg.Redis.RateLimit, time.Minute, log),
		middleware.NewAuditMiddleware(log).AuditRequest(),
	}
	handlers.RegisterRoutes(e, h, protected...)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.Server.Addr()),
			zap.String("environment", cfg.App.Environment),
			zap.String("linkage_policy", cfg.Linkage.Policy),
		)
		if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		if err := scheduler.Stop(); err != nil {
			log.Warn("scheduler shutdown failed", zap.Error(err))
		}
	}
	return e.Shutdown(shutdownCtx)
}
