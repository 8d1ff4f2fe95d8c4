package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/saas-landing-api/config"
	handlers "github.com/oksasatya/saas-landing-api/internal/interface/http"
	"github.com/oksasatya/saas-landing-api/internal/interface/middleware"
	"github.com/oksasatya/saas-landing-api/pkg/helpers"
)

// AuthModule wires signup/login and the cookie session endpoints.
// Public: POST /auth/signup, /auth/login, /auth/refresh
// Protected: GET /auth/me, POST /auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Limits  config.RateLimits
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, rdb *redis.Client, limits config.RateLimits) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Redis: rdb, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Redis, m.Limits.Signup, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, m.Limits.Login, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(m.Redis, m.Limits.Refresh, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, m.Limits.Session, middleware.KeyByUserID(), nil))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/logout", m.Handler.Logout)
	}
}
