package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/saas-landing-api/config"
	handlers "github.com/oksasatya/saas-landing-api/internal/interface/http"
	"github.com/oksasatya/saas-landing-api/internal/interface/middleware"
)

// MetaModule serves GET /, GET /test and GET /schema at the server root.
// The liveness and health routes are never rate limited.
type MetaModule struct {
	Handler *handlers.MetaHandler
	Redis   *redis.Client
	Limit   config.RateLimit
}

func NewMetaModule(h *handlers.MetaHandler, rdb *redis.Client, limit config.RateLimit) *MetaModule {
	return &MetaModule{Handler: h, Redis: rdb, Limit: limit}
}

func (m *MetaModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, m.Limit, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/", m.Handler.Root)
	rg.GET("/test", m.Handler.Test)
	rg.GET("/schema", rl, m.Handler.Schema)
}
