package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/storefront-service/internal/api/http"
	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	"github.com/spec-kit/storefront-service/internal/worker"
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

	registry := codec.NewRegistry()
	repository.RegisterSerializers(registry)

	dispatcher := events.NewInMemoryDispatcher()

	// One identity store per role, each over its own pair of files.
	stores := make(map[domain.Role]*service.IdentityStore, len(domain.Roles()))
	resolvers := make(map[domain.Role]auth.AccountResolver, len(domain.Roles()))
	for _, role := range domain.Roles() {
		store, err := service.NewIdentityStore(role, cfg.Auth, service.IdentityDependencies{
			AccountRepo: repository.NewAccountRepository(cfg.Data.Dir, role, registry),
			AuditRepo:   repository.NewAuditRepository(cfg.Data.Dir, role, registry),
		}, logger)
		if err != nil {
			logger.Fatal("failed to load identity store", zap.String("role", string(role)), zap.Error(err))
		}
		stores[role] = store
		resolvers[role] = store
	}

	catalog, err := service.NewCatalog(repository.NewProductRepository(cfg.Data.Dir, registry), logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	ledger, err := service.NewOrderLedger(service.LedgerDependencies{
		CartRepo:   repository.NewCartRepository(cfg.Data.Dir, registry),
		OrderRepo:  repository.NewOrderRepository(cfg.Data.Dir, registry),
		Catalog:    catalog,
		Dispatcher: dispatcher,
	}, logger)
	if err != nil {
		logger.Fatal("failed to load order ledger", zap.Error(err))
	}

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager, resolvers)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Data.Dir),
		Auth:           handlers.NewAuthHandler(stores, tokenManager, dispatcher),
		Accounts:       handlers.NewAccountsHandler(stores),
		Catalog:        handlers.NewCatalogHandler(catalog),
		Cart:           handlers.NewCartHandler(ledger),
		Orders:         handlers.NewOrdersHandler(ledger),
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
