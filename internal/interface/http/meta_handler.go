package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/saas-landing-api/internal/application"
	"github.com/oksasatya/saas-landing-api/internal/domain/entity"
)

// MetaHandler serves the service banner, health report and schema listing.
type MetaHandler struct {
	Health *application.HealthService
}

func NewMetaHandler(health *application.HealthService) *MetaHandler {
	return &MetaHandler{Health: health}
}

// Root GET /
func (h *MetaHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "SaaS Landing Backend is running"})
}

// Test GET /test
func (h *MetaHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, h.Health.Check(c.Request.Context()))
}

// Schema GET /schema
func (h *MetaHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, entity.Schemas())
}
