package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/parceldesk/internal/logger"
	"github.com/parceldesk/internal/queue"

	"github.com/hibiken/asynq"
)

// NotificationService 通知服务
// 说明：主渠道为 Telegram，另可配置一个通用 webhook 作为并行投递渠道。
type NotificationService struct {
	settingService *SettingService
	telegramSender *TelegramNotifyService
	queueClient    *queue.Client
	httpClient     *http.Client
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	settingService *SettingService,
	telegramSender *TelegramNotifyService,
	queueClient *queue.Client,
) *NotificationService {
	return &NotificationService{
		settingService: settingService,
		telegramSender: telegramSender,
		queueClient:    queueClient,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify 发送一条通知。
// 队列可用时入队异步处理，否则同步发送。
func (s *NotificationService) Notify(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrMessageRequired
	}
	if s.queueClient.Enabled() {
		return s.queueClient.EnqueueNotificationDispatch(
			queue.NotificationDispatchPayload{Message: message},
			asynq.MaxRetry(5),
		)
	}
	return s.Dispatch(context.Background(), queue.NotificationDispatchPayload{Message: message})
}

// NotifyAsync 尽力而为地发送通知，不阻塞调用方，失败只记日志。
func (s *NotificationService) NotifyAsync(message string) {
	if s == nil || strings.TrimSpace(message) == "" {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("notification_dispatch_panic", "panic", r)
			}
		}()
		if err := s.Notify(message); err != nil {
			logger.Warnw("notification_dispatch_failed", "error", err)
		}
	}()
}

// Dispatch 处理通知分发任务
func (s *NotificationService) Dispatch(ctx context.Context, payload queue.NotificationDispatchPayload) error {
	message := strings.TrimSpace(payload.Message)
	if message == "" {
		return ErrMessageRequired
	}

	settings, err := s.settingService.GetIntegrationSettings()
	if err != nil {
		return err
	}

	delivered := false
	if settings.TelegramBotToken != "" && settings.TelegramChatID != "" {
		if err := s.telegramSender.SendMessage(ctx, settings.TelegramBotToken, settings.TelegramChatID, message); err != nil {
			logger.Warnw("notification_telegram_failed", "error", err)
		} else {
			delivered = true
		}
	}

	if settings.NotifyWebhookURL != "" {
		if err := s.postWebhook(ctx, settings.NotifyWebhookURL, message); err != nil {
			logger.Warnw("notification_webhook_failed",
				"url", settings.NotifyWebhookURL,
				"error", err,
			)
		} else {
			delivered = true
		}
	}

	if settings.TelegramBotToken == "" && settings.NotifyWebhookURL == "" {
		return ErrNotifyNotConfigured
	}
	if !delivered {
		logger.Warnw("notification_all_channels_failed")
	}
	return nil
}

func (s *NotificationService) postWebhook(ctx context.Context, url, message string) error {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return err
	}
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
	if resp.StatusCode >= 300 {
		return &webhookStatusError{status: resp.StatusCode}
	}
	return nil
}

type webhookStatusError struct {
	status int
}

func (e *webhookStatusError) Error() string {
	return "notify webhook responded " + http.StatusText(e.status)
}
