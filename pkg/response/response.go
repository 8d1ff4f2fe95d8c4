package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	OK        bool              `json:"ok"`
	Detail    string            `json:"detail"`
	Errors    map[string]string `json:"errors,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Success writes {"ok": true, ...fields}.
func Success(ctx *gin.Context, status int, fields gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{"ok": true}
	for k, v := range fields {
		if k == "ok" {
			continue
		}
		body[k] = v
	}
	ctx.JSON(status, body)
}

// Error writes an ErrorBody; errs may be nil.
func Error(ctx *gin.Context, status int, detail string, errs map[string]string) ErrorBody {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := ErrorBody{
		OK:        false,
		Detail:    detail,
		Errors:    errs,
		RequestID: ctx.GetString("request_id"),
	}
	ctx.JSON(status, body)
	return body
}

// Abort is Error followed by ctx.Abort, for middleware.
func Abort(ctx *gin.Context, status int, detail string) {
	Error(ctx, status, detail, nil)
	ctx.Abort()
}
