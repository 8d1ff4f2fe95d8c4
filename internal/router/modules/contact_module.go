package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/saas-landing-api/config"
	handlers "github.com/oksasatya/saas-landing-api/internal/interface/http"
	"github.com/oksasatya/saas-landing-api/internal/interface/middleware"
)

type ContactModule struct {
	Handler *handlers.ContactHandler
	Redis   *redis.Client
	Limit   config.RateLimit
}

func NewContactModule(h *handlers.ContactHandler, rdb *redis.Client, limit config.RateLimit) *ContactModule {
	return &ContactModule{Handler: h, Redis: rdb, Limit: limit}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	// per IP, RATE_LIMIT_CONTACT messages per window
	rl := middleware.RateLimit(m.Redis, m.Limit, middleware.KeyByIPAndPath(), nil)
	rg.POST("/contact", rl, m.Handler.Submit)
}
