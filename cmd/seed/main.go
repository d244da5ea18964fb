package main

import (
	"time"

	"github.com/parceldesk/internal/config"
	"github.com/parceldesk/internal/constants"
	"github.com/parceldesk/internal/logger"
	"github.com/parceldesk/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认控制台用户
	if err := models.InitDefaultUser("owner@localhost", "parceldesk123"); err != nil {
		stdLog.Fatalf("Failed to create default user: %v", err)
	}
	var user models.User
	if err := models.DB.First(&user).Error; err != nil {
		stdLog.Fatalf("Failed to load default user: %v", err)
	}

	var purchaseCount int64
	models.DB.Model(&models.Purchase{}).Count(&purchaseCount)
	if purchaseCount > 0 {
		stdLog.Printf("Purchases already present, skip seeding")
		return
	}

	money := func(s string) *models.Money {
		m, err := models.NewMoneyFromString(s)
		if err != nil {
			stdLog.Fatalf("Bad seed amount %q: %v", s, err)
		}
		return &m
	}
	daysAgo := func(n int) time.Time {
		return time.Now().AddDate(0, 0, -n)
	}

	// 演示购买记录
	delivered := models.Purchase{
		UserID:        user.ID,
		StoreName:     "Keyboard Lab",
		OrderID:       "KL-20250811-001",
		OrderDate:     daysAgo(20),
		Amount:        money("129.99"),
		PaymentMethod: "paypal",
		EmailUsed:     "owner@localhost",
		Notes:         "Group buy, shipped from EU warehouse",
	}
	if err := models.DB.Create(&delivered).Error; err != nil {
		stdLog.Fatalf("Failed to seed purchase: %v", err)
	}
	deliveredShipment := models.Shipment{
		PurchaseID:     delivered.ID,
		TrackingNumber: "RR123456789NL",
		Courier:        "postnl",
		Status:         constants.ShipmentStatusDelivered,
	}
	if err := models.DB.Create(&deliveredShipment).Error; err != nil {
		stdLog.Fatalf("Failed to seed shipment: %v", err)
	}
	checkpoints := []models.Checkpoint{
		{ShipmentID: deliveredShipment.ID, Description: "Shipment picked up", Location: "Amsterdam, NL", Time: daysAgo(18)},
		{ShipmentID: deliveredShipment.ID, Description: "Departed origin facility", Location: "Amsterdam, NL", Time: daysAgo(17)},
		{ShipmentID: deliveredShipment.ID, Description: "Arrived at destination country", Location: "Frankfurt, DE", Time: daysAgo(12)},
		{ShipmentID: deliveredShipment.ID, Description: "Delivered", Location: "Berlin, DE", Time: daysAgo(10)},
	}
	for i := range checkpoints {
		if err := models.DB.Create(&checkpoints[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed checkpoint: %v", err)
		}
	}

	inTransit := models.Purchase{
		UserID:          user.ID,
		StoreName:       "AliExpress",
		OrderID:         "8167423990124521",
		OrderDate:       daysAgo(6),
		Amount:          money("23.50"),
		PaymentMethod:   "card",
		EmailUsed:       "owner@localhost",
		ShippingAddress: "Musterstraße 1, 10115 Berlin",
	}
	if err := models.DB.Create(&inTransit).Error; err != nil {
		stdLog.Fatalf("Failed to seed purchase: %v", err)
	}
	if err := models.DB.Create(&models.Shipment{
		PurchaseID:     inTransit.ID,
		TrackingNumber: "LP00123456789012",
		Courier:        "cainiao",
		Status:         constants.ShipmentStatusInTransit,
	}).Error; err != nil {
		stdLog.Fatalf("Failed to seed shipment: %v", err)
	}

	refunding := models.Purchase{
		UserID:        user.ID,
		StoreName:     "Amazon",
		OrderID:       "302-5521984-1134567",
		OrderDate:     daysAgo(40),
		Amount:        money("54.90"),
		PaymentMethod: "card",
	}
	if err := models.DB.Create(&refunding).Error; err != nil {
		stdLog.Fatalf("Failed to seed purchase: %v", err)
	}
	startDate := daysAgo(5)
	if err := models.DB.Create(&models.Refund{
		PurchaseID:      refunding.ID,
		Status:          constants.RefundStatusRequested,
		Amount:          money("54.90"),
		Platform:        "amazon",
		Reason:          "Item arrived damaged",
		RefundStartDate: &startDate,
	}).Error; err != nil {
		stdLog.Fatalf("Failed to seed refund: %v", err)
	}
	if err := models.DB.Create(&models.Claim{
		PurchaseID: refunding.ID,
		Status:     constants.ClaimStatusInitiated,
		Reason:     "Warranty claim for dead pixels",
		RMANumber:  "RMA-2025-0042",
	}).Error; err != nil {
		stdLog.Fatalf("Failed to seed claim: %v", err)
	}

	stdLog.Printf("Seed completed: 3 purchases, 2 shipments, 1 refund, 1 claim")
}
