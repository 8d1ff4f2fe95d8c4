package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/saas-landing-api/internal/application"
	"github.com/oksasatya/saas-landing-api/internal/domain/entity"
	"github.com/oksasatya/saas-landing-api/pkg/response"
	"github.com/oksasatya/saas-landing-api/pkg/validation"
)

const msgInvalidCredentials = "Invalid credentials"

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{
		IP:        clientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString("request_id"),
	}
}

// bindJSON binds the body and writes a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err), validation.ToDetails(err))
		return false
	}
	return true
}

// fail maps service errors: bad credentials become 401, everything else is a
// validation or storage failure and becomes 400 with the error text.
func fail(c *gin.Context, logger *logrus.Logger, op string, err error) {
	if errors.Is(err, application.ErrInvalidCredentials) {
		response.Error(c, http.StatusUnauthorized, msgInvalidCredentials, nil)
		return
	}
	entry := logger.WithError(err).WithField("request_id", c.GetString("request_id"))
	if errors.Is(err, entity.ErrInvalid) {
		entry.Debug(op + " rejected")
	} else {
		entry.Warn(op + " failed")
	}
	response.Error(c, http.StatusBadRequest, err.Error(), nil)
}
