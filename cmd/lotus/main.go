package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lotus-studio/lotus/internal/app"
	"github.com/lotus-studio/lotus/internal/auth"
	"github.com/lotus-studio/lotus/internal/observability"
	"github.com/lotus-studio/lotus/internal/platform/cache"
	"github.com/lotus-studio/lotus/internal/platform/db"
	"github.com/lotus-studio/lotus/internal/sessions"
	"github.com/lotus-studio/lotus/internal/teachers"
	"github.com/lotus-studio/lotus/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, teacher cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, tokenService)
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := auth.NewMiddleware(logger, tokenService, authRepo)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService)

	teachersRepo := teachers.NewRepository(pool)
	teachersCache := teachers.NewCache(redisClient, cfg.TeacherCacheTTL)
	teachersService := teachers.NewService(teachersRepo, teachersCache)
	teachersHandler := teachers.NewHandler(logger, teachersService)

	sessionsRepo := sessions.NewRepository(pool)
	sessionsService := sessions.NewService(sessionsRepo, usersRepo)
	sessionsHandler := sessions.NewHandler(logger, sessionsService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthMiddleware:  authMiddleware,
		AuthHandler:     authHandler,
		SessionsHandler: sessionsHandler,
		TeachersHandler: teachersHandler,
		UsersHandler:    usersHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
