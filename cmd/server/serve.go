package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo_expert/internal/api"
	"todo_expert/internal/app/service"
	"todo_expert/internal/common/security"
	"todo_expert/internal/domain/repository"
	"todo_expert/internal/platform/cache"
	"todo_expert/internal/platform/config"
	"todo_expert/internal/platform/database"
	"todo_expert/internal/platform/logging"
	"todo_expert/internal/platform/weather"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// 1. Load Configuration
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logger.Info(ctx, "Configuration loaded.")

	// 2. Initialize Database
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	logger.Info(ctx, "Database connected.")

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, db.DB, "up"); err != nil {
			return err
		}
		logger.Info(ctx, "Migrations applied.")
	}

	// 3. Initialize Redis
	rdb, err := cache.ConnectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer cache.CloseRedis(rdb)
	logger.Info(ctx, "Redis connected.")

	// 4. Security
	tokens := security.NewJWTIssuer(cfg.JWTKey, cfg.JWTExp)
	encoder := security.NewBcryptEncoder(bcrypt.DefaultCost)

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	todoRepo := repository.NewPgTodoRepository(db)
	commentRepo := repository.NewPgCommentRepository(db)

	weatherProvider := weather.NewCachedProvider(
		weather.NewBreakerProvider(weather.NewClient(cfg.WeatherAPIURL, cfg.WeatherTimeout)),
		rdb,
		cfg.WeatherCacheTTL,
		logger,
	)

	// 6. Initialize Services
	services := api.Services{
		Auth:         service.NewAuthService(userRepo, encoder, tokens, logger),
		Users:        service.NewUserService(userRepo, encoder),
		UserAdmin:    service.NewUserAdminService(userRepo),
		Todos:        service.NewTodoService(todoRepo, weatherProvider),
		Comments:     service.NewCommentService(commentRepo, todoRepo),
		CommentAdmin: service.NewCommentAdminService(database.NewTxRunner(db), repository.NewPgCommentRepository),
	}

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(api.RouterConfig{
		TokenAuth:       tokens.TokenAuth(),
		Logger:          logger,
		AdminPathPrefix: cfg.AdminPathPrefix,
	}, services)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("could not listen on %s: %w", cfg.APIPort, err)
		}
		close(serveErr)
	}()

	select {
	case <-stop:
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	logger.Info(ctx, "Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info(ctx, "Server stopped gracefully.")
	return nil
}
