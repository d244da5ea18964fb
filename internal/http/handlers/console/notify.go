package console

import (
	"github.com/parceldesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// NotifyRequest 手动发送通知请求
type NotifyRequest struct {
	Message string `json:"message" binding:"required"`
}

// SendNotification 手动发送一条通知（控制台测试通道用）
func (h *Handler) SendNotification(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "message required", err)
		return
	}

	if err := h.NotificationService.Notify(req.Message); err != nil {
		respondServiceError(c, err, "notification send failed")
		return
	}
	response.Success(c, gin.H{"sent": true})
}
