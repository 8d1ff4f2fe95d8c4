package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/config"
	"github.com/oksasatya/saas-landing-api/internal/application"
	"github.com/oksasatya/saas-landing-api/internal/domain/repository"
	"github.com/oksasatya/saas-landing-api/pkg/helpers"
)

// Container holds the components built once at startup and shared by every
// module. It is passed explicitly; there is no package-level state.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  repository.DocumentStore
	JWT    *helpers.JWTManager

	// Optional; nil disables sessions/rate limits and the mail queue.
	Redis *redis.Client
	Jobs  application.JobPublisher
}

func New(cfg *config.Config, logger *logrus.Logger, store repository.DocumentStore) *Container {
	return &Container{
		Config: cfg,
		Logger: logger,
		Store:  store,
		JWT:    helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
	}
}

// SetRabbitPub installs p as the job publisher. A nil p leaves Jobs nil.
func (c *Container) SetRabbitPub(p *helpers.RabbitPublisher) {
	if p == nil {
		c.Jobs = nil
		return
	}
	c.Jobs = p
}
