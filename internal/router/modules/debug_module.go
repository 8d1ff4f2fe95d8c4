package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/saas-landing-api/config"
	"github.com/oksasatya/saas-landing-api/internal/interface/middleware"
)

type DebugModule struct {
	Redis *redis.Client
	Limit config.RateLimit
}

func NewDebugModule(rdb *redis.Client, limit config.RateLimit) *DebugModule {
	return &DebugModule{Redis: rdb, Limit: limit}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar, including the "landing" request counters; rate-limited per IP
	rl := middleware.RateLimit(m.Redis, m.Limit, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
