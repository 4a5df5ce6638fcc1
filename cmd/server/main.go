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
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"sarb.backend/internal/config"
	"sarb.backend/internal/infrastructure/datasources"
	"sarb.backend/internal/infrastructure/jobs"
	"sarb.backend/internal/infrastructure/repositories"
	"sarb.backend/internal/infrastructure/storage"
	"sarb.backend/internal/interfaces/http/handlers"
	"sarb.backend/internal/interfaces/http/middleware"
	"sarb.backend/internal/interfaces/web"
	"sarb.backend/internal/usecases"
	"sarb.backend/pkg/jwt"
	"sarb.backend/pkg/logger"
	"sarb.backend/pkg/redis"
)

var (
	loadDotenv      = godotenv.Load
	loadCfg         = config.Load
	initLog         = logger.Init
	connectRedis    = redis.Connect
	openDB          = datasources.Open
	newMediaStorage = storage.New
	runServer       = serve

	shutdownTimeout = 10 * time.Second
	dbPingTimeout   = 5 * time.Second
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx)
}

func run(ctx context.Context) error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := datasources.Close(db); err != nil {
			logger.Warn(ctx, "Failed to close database", zap.Error(err))
		}
	}()

	if err := datasources.Ping(ctx, db, dbPingTimeout); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to database", zap.String("driver", cfg.Database.Driver))
		if cfg.Database.AutoMigrate {
			if err := datasources.Migrate(ctx, db); err != nil {
				return err
			}
		}
	}

	var store *redis.Store
	if cfg.Redis.Enabled() {
		store, err = connectRedis(cfg.Redis.URL, cfg.Redis.Password)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer store.Close()
		logger.Info(ctx, "Redis initialized")
	} else {
		logger.Warn(ctx, "REDIS_URL not set, token revocation and idempotency replay are disabled")
	}

	media, err := newMediaStorage(ctx, cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to initialize media storage: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	teamRepo := repositories.NewTeamMemberRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	caseStudyRepo := repositories.NewCaseStudyRepository(db)
	contactRepo := repositories.NewContactMessageRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, redis.NewTokenDenylist(store))
	teamUsecase := usecases.NewTeamUsecase(teamRepo, media, cfg.Media.MaxBytes)
	serviceUsecase := usecases.NewServiceUsecase(serviceRepo, uow)
	caseStudyUsecase := usecases.NewCaseStudyUsecase(caseStudyRepo, uow, media, cfg.Media.MaxBytes)
	contactUsecase := usecases.NewContactUsecase(contactRepo)

	retentionJob := jobs.NewContactRetentionJob(contactUsecase, cfg.Contact.Retention, cfg.Contact.PurgeSchedule)
	if err := retentionJob.Start(ctx); err != nil {
		return err
	}
	defer retentionJob.Stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	checks := map[string]handlers.Pinger{
		"database": func(ctx context.Context) error { return datasources.Ping(ctx, db, dbPingTimeout) },
	}
	if store != nil {
		checks["redis"] = store.Ping
	}

	limiter := middleware.NewIPRateLimiter(cfg.Contact.RateLimit, cfg.Contact.RateBurst)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware("/health", "/metrics"))
	r.Use(metrics.Middleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerOpsRoutes(r, handlers.NewHealthHandler(checks), metrics)
	registerMediaRoute(r, cfg.Media)

	authMiddleware := middleware.AuthMiddleware(authUsecase)
	registerAPIRoutes(r, routeDeps{
		authHandler:      handlers.NewAuthHandler(authUsecase),
		teamHandler:      handlers.NewTeamHandler(teamUsecase, cfg.Media.MaxBytes),
		serviceHandler:   handlers.NewServiceHandler(serviceUsecase),
		caseStudyHandler: handlers.NewCaseStudyHandler(caseStudyUsecase, cfg.Media.MaxBytes),
		contactHandler:   handlers.NewContactHandler(contactUsecase),
		authMiddleware:   authMiddleware,
		staffMiddleware:  middleware.RequireStaff(),
		contactGuards: []gin.HandlerFunc{
			middleware.RateLimitMiddleware(limiter),
			middleware.IdempotencyMiddleware(store, cfg.Contact.IdempotencyTTL),
		},
	})

	if err := registerWebRoutes(r, web.NewPages(teamUsecase, serviceUsecase, caseStudyUsecase, contactUsecase),
		middleware.RateLimitMiddleware(limiter)); err != nil {
		return err
	}

	logger.Info(ctx, "Routes registered", zap.Int("count", len(r.Routes())))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(ctx, "Sarb backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "http://localhost:"+cfg.Server.Port+"/api"),
		zap.String("health", "http://localhost:"+cfg.Server.Port+"/health"),
	)
	if err := runServer(ctx, srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info(context.Background(), "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
