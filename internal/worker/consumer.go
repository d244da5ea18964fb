package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/parceldesk/internal/logger"
	"github.com/parceldesk/internal/provider"
	"github.com/parceldesk/internal/queue"
	"github.com/parceldesk/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotificationDispatch, c.handleNotificationDispatch)
	mux.HandleFunc(queue.TaskTrackerRegister, c.handleTrackerRegister)
}

func (c *Consumer) handleNotificationDispatch(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notification_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NotificationDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notification_dispatch_unmarshal_failed", "error", err)
		return err
	}
	if payload.Message == "" {
		logger.Debugw("worker_notification_dispatch_skip_empty_message")
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_notification_dispatch_skip_service_nil")
		return nil
	}
	if err := c.NotificationService.Dispatch(ctx, payload); err != nil {
		// 没有任何渠道可用时重试没有意义，吞掉避免任务堆积
		if errors.Is(err, service.ErrNotifyNotConfigured) {
			logger.Warnw("worker_notification_dispatch_skip_not_configured")
			return nil
		}
		logger.Warnw("worker_notification_dispatch_failed", "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleTrackerRegister(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_tracker_register_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TrackerRegisterPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_tracker_register_unmarshal_failed", "error", err)
		return err
	}
	if payload.ShipmentID == 0 {
		logger.Debugw("worker_tracker_register_skip_invalid_payload", "shipment_id", payload.ShipmentID)
		return nil
	}
	if c.ShipmentService == nil {
		logger.Warnw("worker_tracker_register_skip_service_nil", "shipment_id", payload.ShipmentID)
		return nil
	}
	if err := c.ShipmentService.RegisterTracker(ctx, payload.ShipmentID); err != nil {
		// 配置缺失或运单号为空属于固定失败，重试不会变好
		if errors.Is(err, service.ErrTrackingNotConfigured) || errors.Is(err, service.ErrTrackingNumberMissing) {
			logger.Warnw("worker_tracker_register_skip_unregisterable", "shipment_id", payload.ShipmentID, "error", err)
			return nil
		}
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_tracker_register_skip_shipment_not_found", "shipment_id", payload.ShipmentID)
			return nil
		}
		logger.Warnw("worker_tracker_register_failed", "shipment_id", payload.ShipmentID, "error", err)
		return err
	}
	logger.Infow("worker_tracker_register_done", "shipment_id", payload.ShipmentID)
	return nil
}
