package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/parceldesk/internal/logger"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifyService Telegram 消息发送器
type TelegramNotifyService struct {
	httpClient *http.Client
}

// NewTelegramNotifyService 创建 Telegram 发送器
func NewTelegramNotifyService(timeoutMS int) *TelegramNotifyService {
	timeout := 10 * time.Second
	if timeoutMS > 0 {
		timeout = time.Duration(timeoutMS) * time.Millisecond
	}
	return &TelegramNotifyService{
		httpClient: &http.Client{Timeout: timeout},
	}
}

type telegramSendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramSendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage 发送 Telegram 消息（HTML 格式）
func (s *TelegramNotifyService) SendMessage(ctx context.Context, botToken, chatID, text string) error {
	if botToken == "" || chatID == "" {
		return ErrNotifyNotConfigured
	}

	payload := telegramSendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIBase, botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	var result telegramSendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("telegram response invalid: %w", err)
	}
	if !result.OK {
		logger.Warnw("telegram_send_failed",
			"status", resp.StatusCode,
			"description", result.Description,
		)
		return fmt.Errorf("telegram send failed: %s", result.Description)
	}
	return nil
}
