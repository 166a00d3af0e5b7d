package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/sla-service/internal/api/http"
	"github.com/spec-kit/sla-service/internal/api/http/handlers"
	"github.com/spec-kit/sla-service/internal/auth"
	"github.com/spec-kit/sla-service/internal/config"
	"github.com/spec-kit/sla-service/internal/events"
	"github.com/spec-kit/sla-service/internal/observability"
	"github.com/spec-kit/sla-service/internal/persistence"
	"github.com/spec-kit/sla-service/internal/repository"
	"github.com/spec-kit/sla-service/internal/service"
	"github.com/spec-kit/sla-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	deptRepo := repository.NewDepartmentRepository(pool)
	slaRepo := repository.NewSLARepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	deptService := service.NewDepartmentService(deptRepo, redis, cfg.Redis.DeptCacheTTL(), logger)
	slaService := service.NewSLAService(service.SLADependencies{
		SLARepo:        slaRepo,
		ReviewRepo:     reviewRepo,
		DepartmentRepo: deptRepo,
		UserRepo:       userRepo,
		Dispatcher:     dispatcher,
	})
	progressService := service.NewProgressService(service.ProgressDependencies{
		ProgressRepo: progressRepo,
		SLARepo:      slaRepo,
		UserRepo:     userRepo,
		Dispatcher:   dispatcher,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo:  commentRepo,
		SLARepo:      slaRepo,
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		Dispatcher:   dispatcher,
	})
	reportService := service.NewReportService(slaRepo, progressRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	if cfg.Seed.DemoData {
		seedService := service.NewSeedService(deptRepo, userRepo, cfg.Auth.BcryptCost, logger)
		if err := seedService.Seed(ctx); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Departments:    handlers.NewDepartmentsHandler(deptService),
		SLAs:           handlers.NewSLAsHandler(slaService),
		Progress:       handlers.NewProgressHandler(progressService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
