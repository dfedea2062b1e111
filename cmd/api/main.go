package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tramites-portal/internal/api/http"
	"github.com/spec-kit/tramites-portal/internal/api/http/handlers"
	"github.com/spec-kit/tramites-portal/internal/auth"
	"github.com/spec-kit/tramites-portal/internal/config"
	"github.com/spec-kit/tramites-portal/internal/events"
	"github.com/spec-kit/tramites-portal/internal/observability"
	"github.com/spec-kit/tramites-portal/internal/persistence"
	"github.com/spec-kit/tramites-portal/internal/repository"
	"github.com/spec-kit/tramites-portal/internal/service"
	"github.com/spec-kit/tramites-portal/internal/worker"
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

	db, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		db.Close(closeCtx)
	}()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(db, logger)
	sessionRepo := repository.NewSessionRepository(db, logger)
	staffRepo := repository.NewStaffRepository(db, logger)
	typeRepo := repository.NewProcedureTypeRepository(db, logger)
	procedureRepo := repository.NewProcedureRepository(db, logger)
	resetRepo := repository.NewPasswordResetRepository(db, logger)
	resumeStore := repository.NewResumeStore(redis)

	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	sessionService := service.NewSessionService(service.SessionDependencies{
		SessionRepo: sessionRepo,
		UserRepo:    userRepo,
		Resume:      resumeStore,
		Dispatcher:  dispatcher,
	}, logger)
	procedureService := service.NewProcedureService(service.ProcedureDependencies{
		ProcedureRepo: procedureRepo,
		TypeRepo:      typeRepo,
		Dispatcher:    dispatcher,
	})
	staffService := service.NewStaffService(staffRepo)
	catalogService := service.NewCatalogService(typeRepo)
	userService := service.NewUserService(userRepo)

	// Live catalog snapshot for the public form; the store stays the
	// fallback when the subscription cannot be opened.
	if stopCatalogWatch, err := catalogService.StartWatch(ctx); err != nil {
		logger.Warn("catalog subscription unavailable", zap.Error(err))
	} else {
		defer stopCatalogWatch()
	}

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, db, redis),
		Auth:           handlers.NewAuthHandler(authService, sessionService, logger),
		Tramites:       handlers.NewTramitesHandler(procedureService),
		Funcionarios:   handlers.NewFuncionariosHandler(staffService),
		Tipos:          handlers.NewTiposHandler(catalogService),
		Usuarios:       handlers.NewUsuariosHandler(userService),
		Sesiones:       handlers.NewSesionesHandler(sessionService),
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
