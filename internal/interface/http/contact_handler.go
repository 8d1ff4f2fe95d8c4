package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/internal/application"
	"github.com/oksasatya/saas-landing-api/pkg/response"
)

type ContactHandler struct {
	Svc    *application.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Submit POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.Svc.Submit(c.Request.Context(), application.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}, requestMeta(c))
	if err != nil {
		fail(c, h.Logger, "contact", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}
