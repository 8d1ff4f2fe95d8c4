package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/saas-landing-api/config"
	handlers "github.com/oksasatya/saas-landing-api/internal/interface/http"
	"github.com/oksasatya/saas-landing-api/internal/interface/middleware"
)

type BlogModule struct {
	Handler *handlers.BlogHandler
	Redis   *redis.Client
	Limit   config.RateLimit
}

func NewBlogModule(h *handlers.BlogHandler, rdb *redis.Client, limit config.RateLimit) *BlogModule {
	return &BlogModule{Handler: h, Redis: rdb, Limit: limit}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, m.Limit, middleware.KeyByIP(), nil)
	rg.GET("/blogs", rl, m.Handler.List)
}
