package console

import (
	"github.com/parceldesk/internal/http/response"
	"github.com/parceldesk/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsUpdateRequest 更新外部集成配置请求
// 未出现的字段保持不变，空串表示清空。
type SettingsUpdateRequest struct {
	Ship24APIKey     *string `json:"ship24_api_key"`
	TelegramBotToken *string `json:"telegram_bot_token"`
	TelegramChatID   *string `json:"telegram_chat_id"`
	NotifyWebhookURL *string `json:"notify_webhook_url"`
}

// GetSettings 获取外部集成配置（密钥脱敏）
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.SettingService.GetIntegrationSettingsMasked()
	if err != nil {
		respondError(c, response.CodeInternal, "settings fetch failed", err)
		return
	}
	response.Success(c, settings)
}

// UpdateSettings 更新外部集成配置
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if _, err := h.SettingService.UpdateIntegrationSettings(service.IntegrationSettingsInput{
		Ship24APIKey:     req.Ship24APIKey,
		TelegramBotToken: req.TelegramBotToken,
		TelegramChatID:   req.TelegramChatID,
		NotifyWebhookURL: req.NotifyWebhookURL,
	}); err != nil {
		respondError(c, response.CodeInternal, "settings update failed", err)
		return
	}

	requestLog(c).Infow("settings_updated")
	settings, err := h.SettingService.GetIntegrationSettingsMasked()
	if err != nil {
		respondError(c, response.CodeInternal, "settings fetch failed", err)
		return
	}
	response.Success(c, settings)
}
