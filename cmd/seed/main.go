package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/saas-landing-api/config"
	"github.com/oksasatya/saas-landing-api/internal/infrastructure"
	"github.com/oksasatya/saas-landing-api/internal/infrastructure/postgres"
	"github.com/oksasatya/saas-landing-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := infrastructure.OpenDocumentStore(ctx, cfg.DatabaseURL, infrastructure.StoreOptions{
		DatabaseName:   cfg.DatabaseName,
		ConnectTimeout: cfg.DBConnTimeout,
		Pool:           postgres.PoolConfig{MaxConns: 2, MinConns: 1, MaxConnLife: cfg.DBMaxConnLife},
		Logger:         logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("open document store")
	}
	defer func() { _ = store.Close(context.Background()) }()

	posts, err := seedBlogposts(ctx, store)
	if err != nil {
		logger.WithError(err).Fatal("seed blogposts")
	}
	products, err := seedProducts(ctx, store)
	if err != nil {
		logger.WithError(err).Fatal("seed products")
	}
	logger.WithField("database", store.Name()).Infof("seeded %d blogposts, %d products", posts, products)
}
