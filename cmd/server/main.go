package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	authsvc "github.com/shelllbyyyyyy/authcore/internal/auth/service"
	"github.com/shelllbyyyyyy/authcore/internal/config"
	"github.com/shelllbyyyyyy/authcore/internal/db"
	"github.com/shelllbyyyyyy/authcore/internal/security"
	"github.com/shelllbyyyyyy/authcore/internal/server"
	"github.com/shelllbyyyyyy/authcore/internal/session"
	"github.com/shelllbyyyyyy/authcore/internal/telemetry/otel"
	userrepo "github.com/shelllbyyyyyy/authcore/internal/user/repository"
	usersvc "github.com/shelllbyyyyyy/authcore/internal/user/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "authcore", false)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.AccessTTL(), cfg.RefreshTTL())

	users := userrepo.NewPostgresRepository(database)
	store := session.NewRedisStore(rdb)

	userService := usersvc.NewUserService(users, hasher)
	authService := authsvc.NewAuthService(users, store, hasher, tokens)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(server.Deps{
		Logger:        logger,
		Tracer:        providers.TracerProvider.Tracer("authcore/http"),
		Tokens:        tokens,
		Auth:          authService,
		Users:         userService,
		SecureCookies: cfg.Env == "production",
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
	logger.Info("HTTP server stopped")
}
