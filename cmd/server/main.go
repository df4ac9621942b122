package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiecho "github.com/fync-dev/fync-auth/api/echo"
	"github.com/fync-dev/fync-auth/cache"
	cacheredis "github.com/fync-dev/fync-auth/cache/redis"
	"github.com/fync-dev/fync-auth/config"
	"github.com/fync-dev/fync-auth/internal/assets"
	"github.com/fync-dev/fync-auth/internal/auth"
	"github.com/fync-dev/fync-auth/internal/metrics"
	"github.com/fync-dev/fync-auth/log"
	"github.com/fync-dev/fync-auth/mongodb"
	"github.com/fync-dev/fync-auth/services"
	"github.com/fync-dev/fync-auth/tracing"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var (
	appLogger      log.Logger
	tracerProvider *sdktrace.TracerProvider
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zerolog.New(os.Stdout).With().Timestamp().Logger().Fatal().Err(err).Msg("Failed to load configuration")
	}

	logLevel, parseErr := zerolog.ParseLevel(cfg.LogLevel)
	if parseErr != nil {
		logLevel = zerolog.InfoLevel
	}
	appLogger = log.NewZerologAdapter(logLevel, cfg.LogPretty)

	ctx := context.Background()
	appLogger.Info(ctx, "Starting fync-auth server...", map[string]interface{}{
		"http_port":     cfg.HTTPPort,
		"mongo_db_name": cfg.MongoDBName,
		"log_level":     cfg.LogLevel,
		"token_cache":   cfg.TokenCacheBackend,
	})

	tp, err := tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize TracerProvider", err)
	}
	tracerProvider = tp

	if initErr := mongodb.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName); initErr != nil {
		appLogger.Fatal(ctx, "Failed to initialize MongoDB connection", initErr)
	}
	db := mongodb.GetDB()

	// Repositories
	userRepo, err := mongodb.NewUserRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize UserRepository", err)
	}
	appRepo, err := mongodb.NewAppRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize AppRepository", err)
	}
	codeRepo, err := mongodb.NewAuthCodeRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize AuthCodeRepository", err)
	}
	tokenRepo, err := mongodb.NewTokenRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize TokenRepository", err)
	}
	devRepo, err := mongodb.NewDeveloperRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize DeveloperRepository", err)
	}

	// Token cache backend
	var tokenCache cache.TokenCache
	switch cfg.TokenCacheBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		tokenCache = cacheredis.NewTokenCache(rdb, cfg.RedisKeyPrefix)
	case "memory":
		tokenCache = cache.NewMemoryTokenCache()
	default:
		tokenCache = nil
	}

	assetStore, err := assets.NewLocalStore("data/assets", cfg.AssetBaseURL)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize asset store", err)
	}

	// Services
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	oauthService := services.NewOAuthService(userRepo, appRepo, codeRepo, tokenRepo, devRepo, tokenCache)
	authService := services.NewAuthService(userRepo, passwordHasher, assetStore, oauthService)
	identityService := services.NewIdentityService(userRepo, assetStore, oauthService)
	tokenService := services.NewTokenService(tokenRepo, tokenCache)

	// HTTP surface
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	api := apiecho.NewAuthAPI(authService, identityService, oauthService, tokenService)
	api.RegisterRoutes(e)

	metrics.Register(prometheus.DefaultRegisterer)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/healthz", func(c echo.Context) error {
		if err := mongodb.Ping(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal(ctx, "HTTP server failed", err)
		}
	}()
	appLogger.Info(ctx, "HTTP server listening", map[string]interface{}{"port": cfg.HTTPPort})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "HTTP server shutdown failed", err)
	}
	mongodb.CloseMongoDB(shutdownCtx)
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "TracerProvider shutdown failed", err)
	}
	appLogger.Info(ctx, "Server stopped.")
}
