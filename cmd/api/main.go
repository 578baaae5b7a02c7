package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/sales-report-service/internal/api/http"
	"github.com/spec-kit/sales-report-service/internal/api/http/handlers"
	"github.com/spec-kit/sales-report-service/internal/auth"
	"github.com/spec-kit/sales-report-service/internal/config"
	"github.com/spec-kit/sales-report-service/internal/events"
	"github.com/spec-kit/sales-report-service/internal/hierarchy"
	"github.com/spec-kit/sales-report-service/internal/observability"
	"github.com/spec-kit/sales-report-service/internal/persistence"
	"github.com/spec-kit/sales-report-service/internal/repository"
	"github.com/spec-kit/sales-report-service/internal/service"
	"github.com/spec-kit/sales-report-service/internal/worker"
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
	staffRepo := repository.NewStaffRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	visitRepo := repository.NewVisitRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	resolver := hierarchy.NewResolver(repository.NewStaffDirectory(staffRepo))

	notificationService := service.NewNotificationService(redis.Client, dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(staffRepo, tokenManager, logger)
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo:   reportRepo,
		VisitRepo:    visitRepo,
		CommentRepo:  commentRepo,
		CustomerRepo: customerRepo,
		Dispatcher:   dispatcher,
	})
	visitService := service.NewVisitService(service.VisitDependencies{
		VisitRepo:    visitRepo,
		ReportRepo:   reportRepo,
		CustomerRepo: customerRepo,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo: commentRepo,
		ReportRepo:  reportRepo,
		Dispatcher:  dispatcher,
	})
	customerService := service.NewCustomerService(service.CustomerDependencies{
		CustomerRepo: customerRepo,
		VisitRepo:    visitRepo,
	})
	staffService := service.NewStaffService(service.StaffDependencies{
		StaffRepo:  staffRepo,
		ReportRepo: reportRepo,
		Resolver:   resolver,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		ReportRepo:    reportRepo,
		VisitRepo:     visitRepo,
		CommentRepo:   commentRepo,
		Notifications: notificationService,
		Logger:        logger,
	})
	statisticsService := service.NewStatisticsService(service.StatisticsDependencies{
		ReportRepo: reportRepo,
		VisitRepo:  visitRepo,
		StaffRepo:  staffRepo,
	})

	authMiddleware := auth.NewAuthMiddleware(tokenManager, staffRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Reports:        handlers.NewReportsHandler(reportService),
		Visits:         handlers.NewVisitsHandler(visitService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Staff:          handlers.NewStaffHandler(staffService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, statisticsService),
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
