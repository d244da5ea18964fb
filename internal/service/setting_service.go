package service

import (
	"strings"

	"github.com/parceldesk/internal/config"
	"github.com/parceldesk/internal/constants"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/repository"
)

// SettingService 系统设置服务
// 说明：settings 表中的值优先于配置文件，表中为空时回落到配置文件。
type SettingService struct {
	cfg  *config.Config
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(cfg *config.Config, repo repository.SettingRepository) *SettingService {
	return &SettingService{cfg: cfg, repo: repo}
}

// IntegrationSettings 外部集成配置快照
type IntegrationSettings struct {
	Ship24APIKey     string `json:"ship24_api_key"`
	TelegramBotToken string `json:"telegram_bot_token"`
	TelegramChatID   string `json:"telegram_chat_id"`
	NotifyWebhookURL string `json:"notify_webhook_url"`
}

// IntegrationSettingsInput 更新外部集成配置输入
// 指针字段为 nil 表示不修改该项，空串表示清空。
type IntegrationSettingsInput struct {
	Ship24APIKey     *string
	TelegramBotToken *string
	TelegramChatID   *string
	NotifyWebhookURL *string
}

// GetIntegrationSettings 获取外部集成配置（含配置文件兜底）
func (s *SettingService) GetIntegrationSettings() (IntegrationSettings, error) {
	result := IntegrationSettings{}
	stored, err := s.loadStored()
	if err != nil {
		return result, err
	}

	result.Ship24APIKey = firstNonEmpty(stored[constants.SettingFieldShip24APIKey], s.cfg.Tracking.APIKey)
	result.TelegramBotToken = firstNonEmpty(stored[constants.SettingFieldTelegramBotToken], s.cfg.Telegram.BotToken)
	result.TelegramChatID = firstNonEmpty(stored[constants.SettingFieldTelegramChatID], s.cfg.Telegram.ChatID)
	result.NotifyWebhookURL = firstNonEmpty(stored[constants.SettingFieldNotifyWebhookURL], s.cfg.Notify.WebhookURL)
	return result, nil
}

// GetIntegrationSettingsMasked 获取脱敏后的外部集成配置（用于控制台展示）
func (s *SettingService) GetIntegrationSettingsMasked() (IntegrationSettings, error) {
	settings, err := s.GetIntegrationSettings()
	if err != nil {
		return IntegrationSettings{}, err
	}
	settings.Ship24APIKey = maskSecret(settings.Ship24APIKey)
	settings.TelegramBotToken = maskSecret(settings.TelegramBotToken)
	return settings, nil
}

// UpdateIntegrationSettings 更新外部集成配置
func (s *SettingService) UpdateIntegrationSettings(input IntegrationSettingsInput) (IntegrationSettings, error) {
	stored, err := s.loadStored()
	if err != nil {
		return IntegrationSettings{}, err
	}

	applyField(stored, constants.SettingFieldShip24APIKey, input.Ship24APIKey)
	applyField(stored, constants.SettingFieldTelegramBotToken, input.TelegramBotToken)
	applyField(stored, constants.SettingFieldTelegramChatID, input.TelegramChatID)
	applyField(stored, constants.SettingFieldNotifyWebhookURL, input.NotifyWebhookURL)

	value := make(models.JSON, len(stored))
	for key, val := range stored {
		value[key] = val
	}
	if _, err := s.repo.Upsert(constants.SettingKeyIntegrations, value); err != nil {
		return IntegrationSettings{}, err
	}
	return s.GetIntegrationSettings()
}

func (s *SettingService) loadStored() (map[string]string, error) {
	result := make(map[string]string)
	setting, err := s.repo.GetByKey(constants.SettingKeyIntegrations)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return result, nil
	}
	for key, raw := range setting.ValueJSON {
		if str, ok := raw.(string); ok {
			result[key] = strings.TrimSpace(str)
		}
	}
	return result, nil
}

func applyField(stored map[string]string, key string, value *string) {
	if value == nil {
		return
	}
	stored[key] = strings.TrimSpace(*value)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// maskSecret 脱敏密钥，仅保留末 4 位
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
