package console

import (
	"errors"

	handlershared "github.com/parceldesk/internal/http/handlers/shared"
	"github.com/parceldesk/internal/http/response"
	"github.com/parceldesk/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// respondServiceError 按服务层哨兵错误映射响应。
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "record not found", nil)
	case errors.Is(err, service.ErrStatusInvalid):
		respondError(c, response.CodeBadRequest, "status invalid", nil)
	case errors.Is(err, service.ErrMessageRequired):
		respondError(c, response.CodeBadRequest, "message required", nil)
	case errors.Is(err, service.ErrNotifyNotConfigured):
		respondError(c, response.CodeBadRequest, "notification channel not configured", nil)
	case errors.Is(err, service.ErrTrackingNotConfigured):
		respondError(c, response.CodeBadRequest, "tracking api not configured", nil)
	case errors.Is(err, service.ErrTrackingNumberMissing):
		respondError(c, response.CodeBadRequest, "tracking number missing", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}
