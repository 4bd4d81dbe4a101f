package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-auth-service/internal/api/http"
	"github.com/spec-kit/user-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/user-auth-service/internal/auth"
	"github.com/spec-kit/user-auth-service/internal/config"
	"github.com/spec-kit/user-auth-service/internal/domain"
	"github.com/spec-kit/user-auth-service/internal/events"
	"github.com/spec-kit/user-auth-service/internal/observability"
	"github.com/spec-kit/user-auth-service/internal/persistence"
	"github.com/spec-kit/user-auth-service/internal/repository"
	"github.com/spec-kit/user-auth-service/internal/service"
	"github.com/spec-kit/user-auth-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.OpenPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.Enabled() {
		if err := persistence.RunMigrations(ctx, cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	dependencies := map[string]handlers.Pinger{}

	userRepo := pg.UserStore()
	if pg.Enabled() {
		dependencies["postgres"] = pg
	}

	var revocations repository.TokenRevocationRepository
	if cfg.Auth.RevocationEnabled {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redis.Ping(pingCtx); err != nil {
			logger.Warn("token revocation disabled; redis unavailable", zap.Error(err))
		} else {
			revocations = repository.NewTokenRevocationRepository(redis.Client, redis.Prefix)
			dependencies["redis"] = redis
		}
		pingCancel()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	authService, err := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:       userRepo,
		RevocationRepo: revocations,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	userService := service.NewUserService(*cfg, userRepo, dispatcher, logger)

	authOpts := []auth.AuthenticatorOption{auth.WithMetrics(metrics)}
	if revocations != nil {
		authOpts = append(authOpts, auth.WithRevocations(revocations))
	}
	authenticator := auth.NewAuthenticator(authService.TokenManager(), logger, authOpts...)

	adminRoles := auth.RolesFromStrings(cfg.Auth.UserAdminRoles)
	for _, role := range adminRoles {
		if !role.Valid() {
			logger.Warn("unknown role in AUTH_USER_ADMIN_ROLES", zap.String("role", string(role)))
		}
	}
	if len(adminRoles) == 0 {
		logger.Warn("AUTH_USER_ADMIN_ROLES is empty; user management is closed to everyone")
	}

	cookies := auth.CookiePolicy{
		Domain: cfg.Auth.CookieDomain,
		Path:   cfg.Auth.CookiePath,
		Secure: cfg.App.IsProduction(),
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Home:          handlers.NewHomeHandler(),
		Auth:          handlers.NewAuthHandler(authService, cookies),
		Users:         handlers.NewUsersHandler(userService),
		Authenticator: authenticator,
		UserAdmins:    auth.NewRoleGate(adminRoles...),
		Gatherer:      registry,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()),
			zap.Strings("user_admin_roles", roleNames(adminRoles)),
			zap.Bool("revocation", revocations != nil))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func roleNames(roles []domain.Role) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return names
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
