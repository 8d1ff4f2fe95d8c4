package infrastructure

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/internal/domain/repository"
	"github.com/oksasatya/saas-landing-api/internal/infrastructure/memory"
	"github.com/oksasatya/saas-landing-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/saas-landing-api/internal/infrastructure/postgres"
)

// StoreOptions carries what OpenDocumentStore needs beyond the URL.
type StoreOptions struct {
	DatabaseName   string
	ConnectTimeout time.Duration
	Pool           postgres.PoolConfig
	Logger         *logrus.Logger
}

// Backend reports which store implementation serves databaseURL.
//
// Supported schemes:
//
//	mongodb, mongodb+srv   - MongoDB
//	postgres, postgresql   - PostgreSQL JSONB table
//	memory, or empty URL   - in-process (ephemeral)
func Backend(databaseURL string) (string, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return "memory", nil
	}
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return "mongodb", nil
	case "postgres", "postgresql":
		return "postgres", nil
	case "memory":
		return "memory", nil
	default:
		return "", fmt.Errorf("unsupported DATABASE_URL scheme %q (supported: mongodb, postgres, memory)", u.Scheme)
	}
}

// OpenDocumentStore connects the backend selected by databaseURL.
func OpenDocumentStore(ctx context.Context, databaseURL string, opts StoreOptions) (repository.DocumentStore, error) {
	backend, err := Backend(databaseURL)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	opts.Logger.WithField("backend", backend).Info("opening document store")

	switch backend {
	case "mongodb":
		s, err := mongodb.Connect(ctx, databaseURL, opts.DatabaseName, opts.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		if err := postgres.Migrate(databaseURL, opts.Logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pc := opts.Pool
		pc.ConnectTimeout = opts.ConnectTimeout
		pool, err := postgres.NewPool(ctx, databaseURL, pc)
		if err != nil {
			return nil, err
		}
		return postgres.NewDocumentStore(pool, opts.DatabaseName), nil
	default:
		return memory.NewDocumentStore(opts.DatabaseName), nil
	}
}
