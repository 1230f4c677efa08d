// @title           Todo API
// @version         1.0
// @description     Minimal todo CRUD service backed by MySQL.
// @host            localhost:5000
// @BasePath        /
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo-api/internal/app"
	"todo-api/internal/config"
	"todo-api/internal/database"
	"todo-api/internal/logger"

	_ "todo-api/docs"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.App.Env == "dev")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	ctx := context.Background()

	// Schema init must finish before any traffic is accepted; retry
	// exhaustion aborts startup.
	if err := database.Init(ctx, cfg.DB, false, zl); err != nil {
		zl.Fatal("database init", zap.Error(err))
	}

	application, err := app.New(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("app init", zap.Error(err))
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		zl.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	if err := application.Close(shutdownCtx); err != nil {
		zl.Error("app close", zap.Error(err))
	}
}
