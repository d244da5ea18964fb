package public

import (
	"errors"
	"io"
	"net/http"

	"github.com/parceldesk/internal/tracking/ship24"

	"github.com/gin-gonic/gin"
)

// Ship24Webhook 承运商状态推送入口。
// 该端点不走统一响应包装：响应体形状是对外契约，承运商按它判断是否重试。
func (h *Handler) Ship24Webhook(c *gin.Context) {
	log := requestLog(c)

	// 处理过程中的任何 panic 都折叠成 500，绝不把堆栈回给承运商
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("ship24_webhook_panic", "panic", r)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		}
	}()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warnw("ship24_webhook_body_read_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}

	headers := make(map[string]string)
	for key, values := range c.Request.Header {
		if len(values) == 0 {
			continue
		}
		headers[key] = values[0]
	}

	log.Infow("ship24_webhook_received",
		"client_ip", c.ClientIP(),
		"body_size", len(body),
	)

	if err := h.TrackingWebhookService.HandleWebhook(headers, body); err != nil {
		if errors.Is(err, ship24.ErrSignatureInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid signature"})
			return
		}
		log.Errorw("ship24_webhook_handle_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Ship24WebhookHealth 健康探测（部分承运商在投递前会先 GET 验证地址可达）
func (h *Handler) Ship24WebhookHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "ship24 webhook alive",
	})
}

// Ship24WebhookHead 部分承运商在 POST 前先发 HEAD
func (h *Handler) Ship24WebhookHead(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Ship24WebhookOptions 预检请求
func (h *Handler) Ship24WebhookOptions(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, HEAD")
	c.Header("Access-Control-Allow-Headers", "*")
	c.Status(http.StatusNoContent)
}
