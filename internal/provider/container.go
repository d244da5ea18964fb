package provider

import (
	"github.com/parceldesk/internal/cache"
	"github.com/parceldesk/internal/config"
	"github.com/parceldesk/internal/logger"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/queue"
	"github.com/parceldesk/internal/repository"
	"github.com/parceldesk/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo       repository.UserRepository
	PurchaseRepo   repository.PurchaseRepository
	ShipmentRepo   repository.ShipmentRepository
	CheckpointRepo repository.CheckpointRepository
	RefundRepo     repository.RefundRepository
	ClaimRepo      repository.ClaimRepository
	SettingRepo    repository.SettingRepository
	DashboardRepo  repository.DashboardRepository

	// Services
	AuthService            *service.AuthService
	SettingService         *service.SettingService
	NotificationService    *service.NotificationService
	PurchaseService        *service.PurchaseService
	ShipmentService        *service.ShipmentService
	RefundService          *service.RefundService
	ClaimService           *service.ClaimService
	DashboardService       *service.DashboardService
	TrackingWebhookService *service.TrackingWebhookService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.ShipmentRepo = repository.NewShipmentRepository(db)
	c.CheckpointRepo = repository.NewCheckpointRepository(db)
	c.RefundRepo = repository.NewRefundRepository(db)
	c.ClaimRepo = repository.NewClaimRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.AuthService = service.NewAuthService(cfg, c.UserRepo)
	c.SettingService = service.NewSettingService(cfg, c.SettingRepo)

	telegramSender := service.NewTelegramNotifyService(cfg.Telegram.TimeoutMS)
	c.NotificationService = service.NewNotificationService(c.SettingService, telegramSender, c.QueueClient)

	c.PurchaseService = service.NewPurchaseService(c.PurchaseRepo)
	c.ShipmentService = service.NewShipmentService(
		cfg,
		c.ShipmentRepo,
		c.PurchaseRepo,
		c.SettingService,
		c.NotificationService,
		c.QueueClient,
	)
	c.RefundService = service.NewRefundService(c.RefundRepo, c.PurchaseRepo)
	c.ClaimService = service.NewClaimService(c.ClaimRepo, c.PurchaseRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	c.TrackingWebhookService = service.NewTrackingWebhookService(
		cfg,
		c.ShipmentRepo,
		c.CheckpointRepo,
		c.PurchaseRepo,
		c.NotificationService,
	)
}
