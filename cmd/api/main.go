package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	httptransport "github.com/funify/funify-api/internal/api/http"
	"github.com/funify/funify-api/internal/api/http/handlers"
	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/config"
	"github.com/funify/funify-api/internal/events"
	"github.com/funify/funify-api/internal/observability"
	"github.com/funify/funify-api/internal/persistence"
	"github.com/funify/funify-api/internal/repository"
	"github.com/funify/funify-api/internal/service"
	"github.com/funify/funify-api/internal/worker"
)

const (
	bodyLimit       = 10 * 1024 * 1024
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("JWT_SECRET is not set; protected routes will fail")
	}
	if !cfg.GitHub.OAuthEnabled() {
		logger.Info("github oauth disabled")
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	campaignRepo := repository.NewCampaignRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	github := auth.NewGitHubClient(cfg.GitHub, auth.NewRedisStateStore(redis.Client))
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		GitHub:     github,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	userService := service.NewUserService(userRepo, dispatcher, logger)
	postService := service.NewPostService(postRepo, dispatcher, logger)
	productService := service.NewProductService(productRepo, dispatcher, logger)
	campaignService := service.NewCampaignService(campaignRepo, dispatcher, logger)
	contentService := service.NewContentService(service.ContentDependencies{
		EventRepo:   repository.NewEventRepository(pool),
		ArticleRepo: repository.NewArticleRepository(pool),
		PodcastRepo: repository.NewPodcastRepository(pool),
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationsDone := worker.StartNotificationWorker(ctx, notificationService)

	app := fiber.New(fiber.Config{
		AppName:       cfg.App.Name,
		BodyLimit:     bodyLimit,
		CaseSensitive: true,
		ErrorHandler:  httptransport.ErrorHandler(logger, metrics),
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigin,
		AllowCredentials: cfg.App.CORSOrigin != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:      handlers.NewAuthHandler(authService),
		Users:     handlers.NewUsersHandler(userService, campaignService),
		Posts:     handlers.NewPostsHandler(postService),
		Products:  handlers.NewProductsHandler(productService),
		Campaigns: handlers.NewCampaignsHandler(campaignService),
		Content:   handlers.NewContentHandler(contentService),
		Gate:      auth.NewAuthMiddleware(tokens, auth.DefaultRouteTable(), logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	select {
	case <-notificationsDone:
	case <-shutdownCtx.Done():
		logger.Warn("notification worker did not stop before shutdown deadline")
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
