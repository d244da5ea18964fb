package service

import (
	"fmt"
	"time"

	"github.com/parceldesk/internal/config"
	"github.com/parceldesk/internal/logger"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/repository"
	"github.com/parceldesk/internal/tracking/ship24"
)

// TrackingWebhookService 承运商 webhook 对账服务
// 职责：验签 -> 宽容解析 -> 定位包裹 -> 覆盖状态 -> 追加轨迹 -> 通知。
type TrackingWebhookService struct {
	cfg            *config.Config
	shipmentRepo   repository.ShipmentRepository
	checkpointRepo repository.CheckpointRepository
	purchaseRepo   repository.PurchaseRepository
	notifySvc      *NotificationService
}

// NewTrackingWebhookService 创建 webhook 对账服务
func NewTrackingWebhookService(
	cfg *config.Config,
	shipmentRepo repository.ShipmentRepository,
	checkpointRepo repository.CheckpointRepository,
	purchaseRepo repository.PurchaseRepository,
	notifySvc *NotificationService,
) *TrackingWebhookService {
	return &TrackingWebhookService{
		cfg:            cfg,
		shipmentRepo:   shipmentRepo,
		checkpointRepo: checkpointRepo,
		purchaseRepo:   purchaseRepo,
		notifySvc:      notifySvc,
	}
}

// HandleWebhook 处理一次入站 webhook。
// 只有验签失败返回非 nil（ship24.ErrSignatureInvalid）；解析失败、找不到包裹、
// 持久化失败都各自记日志后继续，回执成功以免承运商无限重试。
func (s *TrackingWebhookService) HandleWebhook(headers map[string]string, body []byte) error {
	if err := ship24.VerifyWebhookSignature(s.cfg.Tracking.WebhookSecret, headers, body); err != nil {
		logger.Warnw("tracking_webhook_signature_invalid", "body_size", len(body))
		return err
	}

	event := ship24.ParseWebhookEvent(body)
	logger.Infow("tracking_webhook_received",
		"tracking_number", event.TrackingNumber,
		"raw_status", event.RawStatus,
		"status", event.Status,
		"courier", event.Courier,
		"checkpoints", len(event.Checkpoints),
		"body_size", len(body),
	)

	if event.TrackingNumber == "" {
		logger.Warnw("tracking_webhook_no_tracking_number")
		return nil
	}

	shipment, err := s.shipmentRepo.FindByTracking(event.TrackingNumber, event.Courier)
	if err != nil {
		logger.Warnw("tracking_webhook_shipment_lookup_failed",
			"tracking_number", event.TrackingNumber,
			"error", err,
		)
		return nil
	}
	if shipment == nil {
		logger.Warnw("tracking_webhook_shipment_not_found",
			"tracking_number", event.TrackingNumber,
			"courier", event.Courier,
		)
		return nil
	}

	if event.Status != "" {
		// 无条件覆盖，不与现状态比较，重放与乱序以最后写入为准；
		// 写失败只记日志，不影响后续轨迹写入，也不向承运商报错
		if err := s.shipmentRepo.UpdateStatus(shipment.ID, event.Status); err != nil {
			logger.Warnw("tracking_webhook_status_update_failed",
				"shipment_id", shipment.ID,
				"status", event.Status,
				"error", err,
			)
		}
	}

	// 只带状态不带事件数组的推送也要留一条轨迹
	checkpoints := event.Checkpoints
	if len(checkpoints) == 0 && event.RawStatus != "" {
		checkpoints = []ship24.CheckpointEvent{{
			Description: event.RawStatus,
			Time:        time.Now(),
		}}
	}

	// 逐条尽力写入，单条失败只记日志不回滚已写入的轨迹
	inserted := 0
	for _, cp := range checkpoints {
		checkpoint := &models.Checkpoint{
			ShipmentID:  shipment.ID,
			Description: cp.Description,
			Location:    cp.Location,
			Time:        cp.Time,
		}
		if err := s.checkpointRepo.Insert(checkpoint); err != nil {
			logger.Warnw("tracking_webhook_checkpoint_insert_failed",
				"shipment_id", shipment.ID,
				"description", cp.Description,
				"error", err,
			)
			continue
		}
		inserted++
	}

	logger.Infow("tracking_webhook_reconciled",
		"shipment_id", shipment.ID,
		"status", event.Status,
		"checkpoints_inserted", inserted,
	)

	if event.Status != "" && s.notifySvc != nil {
		s.notifySvc.NotifyAsync(s.buildUpdateMessage(shipment, event))
	}
	return nil
}

func (s *TrackingWebhookService) buildUpdateMessage(shipment *models.Shipment, event *ship24.WebhookEvent) string {
	message := "📦 <b>Parcel Update!</b>\n" +
		"--------------------------------------\n" +
		fmt.Sprintf("<b>Tracking:</b> %s\n", shipment.TrackingNumber) +
		fmt.Sprintf("<b>New Status:</b> %s", event.Status)
	if event.RawStatus != "" && event.RawStatus != event.Status {
		message += fmt.Sprintf("\n<b>Carrier Status:</b> %s", event.RawStatus)
	}

	purchase, err := s.purchaseRepo.GetByID(shipment.PurchaseID)
	if err != nil || purchase == nil {
		return message
	}
	message += fmt.Sprintf("\n<b>Store:</b> %s\n<b>Order ID:</b> %s", purchase.StoreName, purchase.OrderID)
	return message
}
