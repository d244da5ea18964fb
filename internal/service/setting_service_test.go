package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/parceldesk/internal/config"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSettingServiceTest(t *testing.T, cfg *config.Config) *SettingService {
	t.Helper()
	dsn := fmt.Sprintf("file:setting_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return NewSettingService(cfg, repository.NewSettingRepository(db))
}

func TestIntegrationSettingsFallBackToConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Tracking.APIKey = "cfg-api-key"
	cfg.Telegram.BotToken = "cfg-bot-token"
	cfg.Telegram.ChatID = "cfg-chat"
	svc := setupSettingServiceTest(t, cfg)

	settings, err := svc.GetIntegrationSettings()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.Ship24APIKey != "cfg-api-key" {
		t.Fatalf("api key = %q, want config fallback", settings.Ship24APIKey)
	}
	if settings.TelegramBotToken != "cfg-bot-token" || settings.TelegramChatID != "cfg-chat" {
		t.Fatalf("telegram fallback missing: %+v", settings)
	}
}

func TestIntegrationSettingsStoredValueWins(t *testing.T) {
	cfg := &config.Config{}
	cfg.Tracking.APIKey = "cfg-api-key"
	svc := setupSettingServiceTest(t, cfg)

	stored := "db-api-key"
	if _, err := svc.UpdateIntegrationSettings(IntegrationSettingsInput{Ship24APIKey: &stored}); err != nil {
		t.Fatalf("update settings failed: %v", err)
	}

	settings, err := svc.GetIntegrationSettings()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.Ship24APIKey != "db-api-key" {
		t.Fatalf("api key = %q, stored value should win", settings.Ship24APIKey)
	}
}

func TestIntegrationSettingsPartialUpdate(t *testing.T) {
	svc := setupSettingServiceTest(t, nil)

	token := "123456:bot-token"
	chat := "-100200300"
	if _, err := svc.UpdateIntegrationSettings(IntegrationSettingsInput{
		TelegramBotToken: &token,
		TelegramChatID:   &chat,
	}); err != nil {
		t.Fatalf("initial update failed: %v", err)
	}

	// 只改 chat_id，bot_token 保持不变
	newChat := "-400500600"
	settings, err := svc.UpdateIntegrationSettings(IntegrationSettingsInput{TelegramChatID: &newChat})
	if err != nil {
		t.Fatalf("partial update failed: %v", err)
	}
	if settings.TelegramBotToken != token {
		t.Fatalf("bot token lost on partial update: %q", settings.TelegramBotToken)
	}
	if settings.TelegramChatID != newChat {
		t.Fatalf("chat id = %q, want %q", settings.TelegramChatID, newChat)
	}
}

func TestIntegrationSettingsMasked(t *testing.T) {
	svc := setupSettingServiceTest(t, nil)

	key := "sk_live_1234567890"
	if _, err := svc.UpdateIntegrationSettings(IntegrationSettingsInput{Ship24APIKey: &key}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	masked, err := svc.GetIntegrationSettingsMasked()
	if err != nil {
		t.Fatalf("get masked failed: %v", err)
	}
	if masked.Ship24APIKey != "****7890" {
		t.Fatalf("masked key = %q", masked.Ship24APIKey)
	}
	if masked.TelegramBotToken != "" {
		t.Fatalf("empty secret should stay empty, got %q", masked.TelegramBotToken)
	}
}
