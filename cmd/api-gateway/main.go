package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/erolls-portal/api/swagger"
	"github.com/noah-isme/erolls-portal/internal/handler"
	internalmiddleware "github.com/noah-isme/erolls-portal/internal/middleware"
	"github.com/noah-isme/erolls-portal/internal/repository"
	"github.com/noah-isme/erolls-portal/internal/service"
	"github.com/noah-isme/erolls-portal/pkg/cache"
	"github.com/noah-isme/erolls-portal/pkg/config"
	"github.com/noah-isme/erolls-portal/pkg/database"
	"github.com/noah-isme/erolls-portal/pkg/export"
	"github.com/noah-isme/erolls-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/erolls-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/erolls-portal/pkg/middleware/requestid"
	"github.com/noah-isme/erolls-portal/pkg/upstream"
)

// @title Electoral Roll Portal Gateway
// @version 1.0.0
// @description Backend-for-frontend for the electoral roll portal: migration approval workflow, dashboards, elector search and BLO data entry.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()
	client := upstream.New(cfg.Upstream, logr, upstream.WithObserver(metricsSvc))

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("redis unavailable", zap.Error(err))
		}
		defer redisClient.Close() //nolint:errcheck
	}

	var db *sqlx.DB
	if cfg.Journal.Enabled {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("postgres unavailable", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
	}

	app := wire(cfg, logr, metricsSvc, client, redisClient, db)
	if app.journalRepo != nil {
		if err := app.journalRepo.EnsureSchema(ctx); err != nil {
			logr.Fatal("failed to prepare action journal", zap.Error(err))
		}
	}
	app.journal.Start(ctx)
	if app.limiter != nil {
		go app.limiter.Run(ctx, time.Minute)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	handler.Register(r, app.routes)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	app.journal.Stop()
}

type application struct {
	routes      handler.Routes
	journal     *service.JournalService
	journalRepo *repository.JournalRepository
	limiter     *internalmiddleware.ActionLimiter
}

// wire builds repositories, services and handlers. A nil Redis client
// disables caching and server-side sessions; a nil db keeps the journal in
// the logs only.
func wire(cfg *config.Config, logr *zap.Logger, metricsSvc *service.MetricsService, client *upstream.Client, redisClient *redis.Client, db *sqlx.DB) application {
	validate := validator.New()
	renderer := export.NewRenderer()
	guard := service.NewInFlightGuard()

	var (
		cacheRepo   *repository.CacheRepository
		sessions    *repository.SessionRepository
		journalRepo *repository.JournalRepository
	)
	dependencies := map[string]handler.Pinger{}
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		sessions = repository.NewSessionRepository(redisClient)
		dependencies["redis"] = cacheRepo
	}
	if db != nil {
		journalRepo = repository.NewJournalRepository(db)
		dependencies["postgres"] = journalRepo
	}

	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled)
	}

	// Optional stores are passed as untyped nil so the services see them as absent.
	var journal *service.JournalService
	if journalRepo != nil {
		journal = service.NewJournalService(journalRepo, metricsSvc, logr, journalConfig(cfg))
	} else {
		journal = service.NewJournalService(nil, metricsSvc, logr, journalConfig(cfg))
	}

	authRepo := repository.NewAuthRepository(client)
	dashboardRepo := repository.NewDashboardRepository(client)
	electorRepo := repository.NewElectorRepository(client)
	registryRepo := repository.NewRegistryRepository(client)

	var authSvc *service.AuthService
	if sessions != nil {
		authSvc = service.NewAuthService(authRepo, sessions, validate, logr, authConfig(cfg))
	} else {
		authSvc = service.NewAuthService(authRepo, nil, validate, logr, authConfig(cfg))
	}

	workflowSvc := service.NewMigrationWorkflowService(
		repository.NewMigrationRepository(client),
		logr,
		service.MigrationWorkflowConfig{
			Policy:          service.PolicyOptions{Match: service.ROMatch(cfg.Workflow.ROMatch)},
			MinReasonLength: cfg.Workflow.MinReasonLength,
		},
		service.WithWorkflowJournal(journal),
		service.WithWorkflowMetrics(metricsSvc),
		service.WithWorkflowGuard(guard),
	)

	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheSvc, logr, service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL})
	applicationSvc := service.NewApplicationService(service.ApplicationServiceParams{
		Repo:            dashboardRepo,
		Dashboards:      dashboardSvc,
		Guard:           guard,
		Journal:         journal,
		Metrics:         metricsSvc,
		Logger:          logr,
		MinReasonLength: cfg.Workflow.MinReasonLength,
	})

	var limiter *internalmiddleware.ActionLimiter
	if cfg.RateLimit.Enabled {
		limiter = internalmiddleware.NewActionLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	return application{
		routes: handler.Routes{
			Auth:       handler.NewAuthHandler(authSvc, service.NewMenuService(authRepo, logr)),
			Migrations: handler.NewMigrationHandler(workflowSvc),
			Dashboards: handler.NewDashboardHandler(dashboardSvc, applicationSvc),
			Electors: handler.NewElectorHandler(
				service.NewElectorService(electorRepo, logr),
				service.NewBLOService(electorRepo, validate, service.UploadPolicy{
					MaxFileSizeBytes: cfg.Uploads.MaxFileSizeBytes,
					AllowedMIMEs:     cfg.Uploads.AllowedMIMEs,
				}, logr),
			),
			Registry: handler.NewRegistryHandler(
				service.NewPollingStationService(registryRepo, renderer, logr),
				service.NewAuditService(registryRepo, renderer, logr),
				service.NewAnalysisService(registryRepo, cacheSvc, logr),
			),
			Journal: handler.NewJournalHandler(journal),
			Metrics: handler.NewMetricsHandler(metricsSvc, dependencies),
			Tokens:  authSvc,
			Limiter: limiter,
		},
		journal:     journal,
		journalRepo: journalRepo,
		limiter:     limiter,
	}
}

func journalConfig(cfg *config.Config) service.JournalConfig {
	return service.JournalConfig{
		Enabled:    cfg.Journal.Enabled,
		Workers:    cfg.Journal.Workers,
		BufferSize: cfg.Journal.BufferSize,
		MaxRetries: cfg.Journal.MaxRetries,
		RetryDelay: cfg.Journal.RetryDelay,
	}
}

func authConfig(cfg *config.Config) service.AuthConfig {
	return service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		Issuer:      cfg.JWT.Issuer,
		SessionTTL:  cfg.JWT.SessionTTL,
	}
}
