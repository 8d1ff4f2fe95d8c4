package router

import (
	"github.com/oksasatya/saas-landing-api/internal/application"
	"github.com/oksasatya/saas-landing-api/internal/container"
	handlers "github.com/oksasatya/saas-landing-api/internal/interface/http"
	"github.com/oksasatya/saas-landing-api/internal/router/modules"
)

// InitModules builds every feature module from c and adds it to r.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	limits := cfg.RateLimits

	health := application.NewHealthService(c.Store, cfg.DatabaseURLSet, cfg.DatabaseNameSet)
	r.AddRoot(modules.NewMetaModule(handlers.NewMetaHandler(health), c.Redis, limits.Schema))

	auth := application.NewAuthService(c.Store, c.JWT, c.Redis, c.Jobs, c.Logger, cfg.AppName)
	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(auth, c.Logger, cfg.CookieDomain, cfg.CookieSecure),
		c.JWT,
		c.Redis,
		limits,
	))

	blog := application.NewBlogService(c.Store)
	r.Add(modules.NewBlogModule(handlers.NewBlogHandler(blog, c.Logger), c.Redis, limits.Blogs))

	contact := application.NewContactService(c.Store, c.Jobs, c.Logger, cfg.AppName, cfg.ContactNotifyEmail)
	r.Add(modules.NewContactModule(handlers.NewContactHandler(contact, c.Logger), c.Redis, limits.Contact))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis, limits.Debug))
	}
}
