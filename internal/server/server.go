// Package server owns the boot sequence: config, database, cache, queue,
// HTTP listener, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/app/services"
	"github.com/shashiranjanraj/allthebeans/config"
	"github.com/shashiranjanraj/allthebeans/internal/kernel"
	"github.com/shashiranjanraj/allthebeans/pkg/cache"
	"github.com/shashiranjanraj/allthebeans/pkg/database"
	"github.com/shashiranjanraj/allthebeans/pkg/logger"
	"github.com/shashiranjanraj/allthebeans/pkg/queue"
)

// Boot loads config and connects the backing services, returning the
// database handle. Shared by the serve, migrate, seed and queue commands.
func Boot() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("server: load config: %w", err)
	}
	logger.Setup()

	db, err := database.Connect()
	if err != nil {
		return nil, fmt.Errorf("server: connect database: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, caching disabled", "error", err)
	}

	return db, nil
}

// Start boots the application and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	db, err := Boot()
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&models.Bean{}, &models.BeanOfTheDay{}, &models.User{}); err != nil {
		return fmt.Errorf("server: auto-migrate: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	setupQueue(ctx, db)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.NewHandler(db),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupQueue registers job types, selects the queue driver, and starts the
// in-process workers that drain the order sink.
func setupQueue(ctx context.Context, db *gorm.DB) {
	services.RegisterJobs()
	queue.UseDB(db)

	if config.QueueDriver() == "redis" && cache.Client() != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.Client()))
		logger.Info("server: queue driver", "driver", "redis")
	} else {
		logger.Info("server: queue driver", "driver", "memory")
	}

	queue.StartWorkers(ctx, 2)
}
