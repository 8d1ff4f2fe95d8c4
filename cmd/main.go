package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/saas-landing-api/config"
	"github.com/oksasatya/saas-landing-api/internal/container"
	"github.com/oksasatya/saas-landing-api/internal/infrastructure"
	"github.com/oksasatya/saas-landing-api/internal/infrastructure/postgres"
	"github.com/oksasatya/saas-landing-api/internal/router"
	"github.com/oksasatya/saas-landing-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	c := container.New(cfg, logger, nil)

	// Document store. A store that cannot be opened is reported by /test
	// and every data endpoint answers 400.
	store, err := infrastructure.OpenDocumentStore(ctx, cfg.DatabaseURL, infrastructure.StoreOptions{
		DatabaseName:   cfg.DatabaseName,
		ConnectTimeout: cfg.DBConnTimeout,
		Pool: postgres.PoolConfig{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		},
		Logger: logger,
	})
	if err != nil {
		logger.WithError(err).Error("document store unavailable")
	} else {
		c.Store = store
		defer func() { _ = store.Close(context.Background()) }()
		logger.WithField("database", store.Name()).Info("document store ready")
	}

	// Redis (optional): sessions and rate limits
	if cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable; sessions and rate limits disabled")
		} else {
			c.Redis = rdb
			defer func() { _ = rdb.Close() }()
		}
	}

	// RabbitMQ (optional): email jobs for cmd/email_worker
	if cfg.MailQueueEnabled() {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; emails will not be queued")
		} else {
			c.SetRabbitPub(pub)
			defer pub.Close()
		}
	}

	r := router.NewEngine(c)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited properly")
}
