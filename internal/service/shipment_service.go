package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/parceldesk/internal/config"
	"github.com/parceldesk/internal/constants"
	"github.com/parceldesk/internal/logger"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/queue"
	"github.com/parceldesk/internal/repository"
	"github.com/parceldesk/internal/tracking/ship24"
)

// ShipmentService 包裹业务服务
type ShipmentService struct {
	cfg            *config.Config
	repo           repository.ShipmentRepository
	purchaseRepo   repository.PurchaseRepository
	settingService *SettingService
	notifySvc      *NotificationService
	queueClient    *queue.Client
}

// NewShipmentService 创建包裹服务
func NewShipmentService(
	cfg *config.Config,
	repo repository.ShipmentRepository,
	purchaseRepo repository.PurchaseRepository,
	settingService *SettingService,
	notifySvc *NotificationService,
	queueClient *queue.Client,
) *ShipmentService {
	return &ShipmentService{
		cfg:            cfg,
		repo:           repo,
		purchaseRepo:   purchaseRepo,
		settingService: settingService,
		notifySvc:      notifySvc,
		queueClient:    queueClient,
	}
}

// ShipmentInput 创建/更新包裹输入
type ShipmentInput struct {
	PurchaseID     uint
	TrackingNumber string
	Courier        string
}

// List 获取包裹列表
func (s *ShipmentService) List(purchaseID uint, status, courier, trackingNumber string, page, pageSize int) ([]models.Shipment, int64, error) {
	filter := repository.ShipmentListFilter{
		Page:            page,
		PageSize:        pageSize,
		PurchaseID:      purchaseID,
		Status:          strings.TrimSpace(status),
		Courier:         strings.TrimSpace(courier),
		TrackingNumber:  strings.TrimSpace(trackingNumber),
		WithCheckpoints: true,
	}
	return s.repo.List(filter)
}

// GetByID 根据 ID 获取包裹
func (s *ShipmentService) GetByID(id uint) (*models.Shipment, error) {
	shipment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, ErrNotFound
	}
	return shipment, nil
}

// Create 创建包裹。
// 带运单号时顺带注册承运商追踪，注册失败不影响包裹创建。
func (s *ShipmentService) Create(input ShipmentInput) (*models.Shipment, error) {
	purchase, err := s.purchaseRepo.GetByID(input.PurchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrNotFound
	}

	shipment := &models.Shipment{
		PurchaseID:     input.PurchaseID,
		TrackingNumber: strings.TrimSpace(input.TrackingNumber),
		Courier:        strings.TrimSpace(input.Courier),
		Status:         constants.ShipmentStatusPending,
	}
	if err := s.repo.Create(shipment); err != nil {
		return nil, err
	}

	if shipment.TrackingNumber != "" {
		s.scheduleTrackerRegister(shipment.ID)
	}
	return shipment, nil
}

// Update 更新包裹的运单信息。
// 运单号变化时重新注册追踪；状态不在此处改，手动改状态走 UpdateStatusManual。
func (s *ShipmentService) Update(id uint, input ShipmentInput) (*models.Shipment, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	newTracking := strings.TrimSpace(input.TrackingNumber)
	trackingChanged := newTracking != "" && newTracking != existing.TrackingNumber

	existing.TrackingNumber = newTracking
	existing.Courier = strings.TrimSpace(input.Courier)
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	if trackingChanged {
		s.scheduleTrackerRegister(existing.ID)
	}
	return existing, nil
}

// UpdateStatusManual 手动改写包裹状态（控制台操作）
func (s *ShipmentService) UpdateStatusManual(id uint, status string) (*models.Shipment, error) {
	normalized := strings.TrimSpace(status)
	if !isKnownShipmentStatus(normalized) {
		return nil, ErrStatusInvalid
	}

	shipment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, ErrNotFound
	}

	if err := s.repo.UpdateStatus(shipment.ID, normalized); err != nil {
		return nil, err
	}
	shipment.Status = normalized

	if s.notifySvc != nil {
		s.notifySvc.NotifyAsync(s.buildManualStatusMessage(shipment))
	}
	return shipment, nil
}

// Delete 删除包裹
func (s *ShipmentService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// RegisterTracker 向 Ship24 注册运单追踪
func (s *ShipmentService) RegisterTracker(ctx context.Context, shipmentID uint) error {
	shipment, err := s.repo.GetByID(shipmentID)
	if err != nil {
		return err
	}
	if shipment == nil {
		return ErrNotFound
	}
	if shipment.TrackingNumber == "" {
		return ErrTrackingNumberMissing
	}

	settings, err := s.settingService.GetIntegrationSettings()
	if err != nil {
		return err
	}
	if settings.Ship24APIKey == "" {
		return ErrTrackingNotConfigured
	}

	cfg := ship24.ClientConfig{
		APIKey:    settings.Ship24APIKey,
		BaseURL:   s.cfg.Tracking.BaseURL,
		TimeoutMS: s.cfg.Tracking.TimeoutMS,
	}
	if _, err := ship24.RegisterTracker(ctx, cfg, ship24.RegisterTrackerInput{
		TrackingNumber: shipment.TrackingNumber,
		Courier:        shipment.Courier,
	}); err != nil {
		return err
	}

	logger.Infow("tracker_registered",
		"shipment_id", shipment.ID,
		"tracking_number", shipment.TrackingNumber,
		"courier", shipment.Courier,
	)
	return nil
}

// scheduleTrackerRegister 调度运单注册。
// 队列可用时入队，否则后台直接调用，失败只记日志。
func (s *ShipmentService) scheduleTrackerRegister(shipmentID uint) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueTrackerRegister(queue.TrackerRegisterPayload{ShipmentID: shipmentID}); err != nil {
			logger.Warnw("tracker_register_enqueue_failed", "shipment_id", shipmentID, "error", err)
		}
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("tracker_register_panic", "shipment_id", shipmentID, "panic", r)
			}
		}()
		if err := s.RegisterTracker(context.Background(), shipmentID); err != nil {
			logger.Warnw("tracker_register_failed", "shipment_id", shipmentID, "error", err)
		}
	}()
}

func (s *ShipmentService) buildManualStatusMessage(shipment *models.Shipment) string {
	storeName := ""
	orderID := ""
	if purchase, err := s.purchaseRepo.GetByID(shipment.PurchaseID); err == nil && purchase != nil {
		storeName = purchase.StoreName
		orderID = purchase.OrderID
	}
	return "✍️ <b>Manual Status Update!</b>\n" +
		"--------------------------------------\n" +
		fmt.Sprintf("<b>Store:</b> %s\n", storeName) +
		fmt.Sprintf("<b>Order ID:</b> %s\n", orderID) +
		fmt.Sprintf("<b>New Status:</b> %s", shipment.Status)
}

func isKnownShipmentStatus(status string) bool {
	for _, known := range constants.KnownShipmentStatuses() {
		if status == known {
			return true
		}
	}
	return false
}
