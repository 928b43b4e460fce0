package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwarren/todoapp/internal/auth"
	"github.com/mwarren/todoapp/internal/config"
	"github.com/mwarren/todoapp/internal/database"
	"github.com/mwarren/todoapp/internal/handlers"
	"github.com/mwarren/todoapp/internal/logger"
	"github.com/mwarren/todoapp/internal/middleware"
	"github.com/mwarren/todoapp/internal/service"
	"github.com/mwarren/todoapp/internal/storage"
)

func main() {
	log := logger.New("server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.Database.PrimaryDSN); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}

	dbManager, err := database.NewDBManager(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	users := storage.NewPostgresUserStore(dbManager)
	todos := storage.NewPostgresTodoStore(dbManager)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	authHandler := handlers.NewAuthHandler(service.NewAuthService(users, jwtManager, logger.New("auth")), logger.New("auth"))
	todoHandler := handlers.NewTodoHandler(service.NewTodoService(todos, logger.New("todos")), logger.New("todos"))
	authMW := middleware.NewAuthMiddleware(jwtManager, users, logger.New("auth"))

	router := handlers.NewRouter(authHandler, todoHandler, handlers.NewHealthHandler(), authMW, logger.New("http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on :%s", cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Shutdown error: %v", err)
		}
	}
}
