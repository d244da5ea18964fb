package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/parceldesk/internal/config"
	"github.com/parceldesk/internal/constants"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/repository"
	"github.com/parceldesk/internal/tracking/ship24"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupWebhookServiceTest(t *testing.T, webhookSecret string) (*TrackingWebhookService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:webhook_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Purchase{},
		&models.Shipment{},
		&models.Checkpoint{},
		&models.Refund{},
		&models.Claim{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Tracking.WebhookSecret = webhookSecret

	svc := NewTrackingWebhookService(
		cfg,
		repository.NewShipmentRepository(db),
		repository.NewCheckpointRepository(db),
		repository.NewPurchaseRepository(db),
		nil,
	)
	return svc, db
}

func seedShipment(t *testing.T, db *gorm.DB, trackingNumber, courier, status string) models.Shipment {
	t.Helper()
	purchase := models.Purchase{
		UserID:    1,
		StoreName: "Amazon",
		OrderID:   "111-222",
		OrderDate: time.Now().UTC(),
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}
	shipment := models.Shipment{
		PurchaseID:     purchase.ID,
		TrackingNumber: trackingNumber,
		Courier:        courier,
		Status:         status,
	}
	if err := db.Create(&shipment).Error; err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}
	return shipment
}

func signWebhookBody(secret string, body []byte) map[string]string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return map[string]string{
		"X-Ship24-Signature": hex.EncodeToString(mac.Sum(nil)),
	}
}

func TestHandleWebhookUpdatesStatusAndCheckpoints(t *testing.T) {
	secret := "hook-secret"
	svc, db := setupWebhookServiceTest(t, secret)
	shipment := seedShipment(t, db, "LP123456789CN", "cainiao", constants.ShipmentStatusPending)

	body := []byte(`{
		"trackingNumber": "LP123456789CN",
		"courier": "cainiao",
		"status": "In Transit",
		"events": [
			{"description": "Accepted", "location": "Shenzhen", "time": "2026-03-01T08:00:00Z"},
			{"description": "Departed", "location": "Shenzhen", "time": "2026-03-01T20:00:00Z"}
		]
	}`)

	if err := svc.HandleWebhook(signWebhookBody(secret, body), body); err != nil {
		t.Fatalf("handle webhook failed: %v", err)
	}

	var got models.Shipment
	if err := db.First(&got, shipment.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusInTransit {
		t.Fatalf("status = %q, want %q", got.Status, constants.ShipmentStatusInTransit)
	}

	var count int64
	if err := db.Model(&models.Checkpoint{}).Where("shipment_id = ?", shipment.ID).Count(&count).Error; err != nil {
		t.Fatalf("count checkpoints failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("checkpoints = %d, want 2", count)
	}
}

func TestHandleWebhookRejectsInvalidSignature(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "hook-secret")
	shipment := seedShipment(t, db, "BAD1", "", constants.ShipmentStatusPending)

	body := []byte(`{"trackingNumber":"BAD1","status":"delivered"}`)
	err := svc.HandleWebhook(map[string]string{"X-Ship24-Signature": "deadbeef"}, body)
	if !errors.Is(err, ship24.ErrSignatureInvalid) {
		t.Fatalf("expected signature error, got %v", err)
	}

	// 验签失败必须零写入
	var got models.Shipment
	if err := db.First(&got, shipment.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusPending {
		t.Fatalf("status changed after rejected webhook: %q", got.Status)
	}
}

func TestHandleWebhookSkipsVerificationWithoutSecret(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	shipment := seedShipment(t, db, "NOSEC1", "", constants.ShipmentStatusPending)

	body := []byte(`{"trackingNumber":"NOSEC1","status":"delivered"}`)
	if err := svc.HandleWebhook(nil, body); err != nil {
		t.Fatalf("handle webhook without secret failed: %v", err)
	}

	var got models.Shipment
	if err := db.First(&got, shipment.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusDelivered {
		t.Fatalf("status = %q, want delivered", got.Status)
	}
}

func TestHandleWebhookUnknownTrackingIsAcknowledged(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	seedShipment(t, db, "KNOWN1", "", constants.ShipmentStatusPending)

	body := []byte(`{"trackingNumber":"UNKNOWN9","status":"delivered"}`)
	if err := svc.HandleWebhook(nil, body); err != nil {
		t.Fatalf("unknown tracking should be acknowledged, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Checkpoint{}).Count(&count).Error; err != nil {
		t.Fatalf("count checkpoints failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("unexpected checkpoint writes: %d", count)
	}
}

func TestHandleWebhookGarbageBodyIsAcknowledged(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	shipment := seedShipment(t, db, "GARB1", "", constants.ShipmentStatusPending)

	if err := svc.HandleWebhook(nil, []byte("this is not json")); err != nil {
		t.Fatalf("garbage body should be acknowledged, got %v", err)
	}

	var got models.Shipment
	if err := db.First(&got, shipment.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusPending {
		t.Fatalf("status changed on garbage body: %q", got.Status)
	}
}

func TestHandleWebhookCourierNarrowsLookup(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	seedShipment(t, db, "MULTI1", "ups", constants.ShipmentStatusPending)
	second := seedShipment(t, db, "MULTI1", "usps", constants.ShipmentStatusPending)

	body := []byte(`{"trackingNumber":"MULTI1","courier":"usps","status":"delivered"}`)
	if err := svc.HandleWebhook(nil, body); err != nil {
		t.Fatalf("handle webhook failed: %v", err)
	}

	var got models.Shipment
	if err := db.First(&got, second.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusDelivered {
		t.Fatalf("courier-matched shipment not updated: %q", got.Status)
	}

	var other models.Shipment
	if err := db.Where("courier = ?", "ups").First(&other).Error; err != nil {
		t.Fatalf("load other shipment failed: %v", err)
	}
	if other.Status != constants.ShipmentStatusPending {
		t.Fatalf("wrong shipment updated: %q", other.Status)
	}
}

func TestHandleWebhookReplayIsWeaklyIdempotentOnStatus(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	shipment := seedShipment(t, db, "REPLAY1", "", constants.ShipmentStatusPending)

	body := []byte(`{
		"trackingNumber": "REPLAY1",
		"status": "delivered",
		"events": [{"description": "Delivered", "time": "2026-03-02T12:00:00Z"}]
	}`)
	for i := 0; i < 3; i++ {
		if err := svc.HandleWebhook(nil, body); err != nil {
			t.Fatalf("replay %d failed: %v", i, err)
		}
	}

	// 状态收敛到同一个值
	var got models.Shipment
	if err := db.First(&got, shipment.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusDelivered {
		t.Fatalf("status = %q, want delivered", got.Status)
	}

	// 轨迹没有去重，重放会产生重复行
	var count int64
	if err := db.Model(&models.Checkpoint{}).Where("shipment_id = ?", shipment.ID).Count(&count).Error; err != nil {
		t.Fatalf("count checkpoints failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("checkpoints = %d, want 3", count)
	}
}

func TestHandleWebhookStatusOverwriteGoesBackwards(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	shipment := seedShipment(t, db, "LATE1", "", constants.ShipmentStatusDelivered)

	// 晚到的旧事件仍然覆盖，最后写入者胜出
	body := []byte(`{"trackingNumber":"LATE1","status":"in transit"}`)
	if err := svc.HandleWebhook(nil, body); err != nil {
		t.Fatalf("handle webhook failed: %v", err)
	}

	var got models.Shipment
	if err := db.First(&got, shipment.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusInTransit {
		t.Fatalf("status = %q, want in_transit", got.Status)
	}
}

func TestHandleWebhookPassthroughStatus(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	shipment := seedShipment(t, db, "PASS1", "", constants.ShipmentStatusPending)

	body := []byte(`{"trackingNumber":"PASS1","status":"Customs Hold"}`)
	if err := svc.HandleWebhook(nil, body); err != nil {
		t.Fatalf("handle webhook failed: %v", err)
	}

	var got models.Shipment
	if err := db.First(&got, shipment.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != "customs_hold" {
		t.Fatalf("status = %q, want customs_hold", got.Status)
	}
}

func TestHandleWebhookStatusOnlyPayloadSynthesizesCheckpoint(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	shipment := seedShipment(t, db, "1Z999AA10123456784", "UPS", constants.ShipmentStatusInTransit)

	// 只有状态、没有事件数组的推送也要留一条轨迹
	body := []byte(`{"trackingNumber":"1Z999AA10123456784","status":"Delivered","courier":"UPS"}`)
	if err := svc.HandleWebhook(nil, body); err != nil {
		t.Fatalf("handle webhook failed: %v", err)
	}

	var got models.Shipment
	if err := db.First(&got, shipment.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusDelivered {
		t.Fatalf("status = %q, want delivered", got.Status)
	}

	var checkpoints []models.Checkpoint
	if err := db.Where("shipment_id = ?", shipment.ID).Find(&checkpoints).Error; err != nil {
		t.Fatalf("load checkpoints failed: %v", err)
	}
	if len(checkpoints) != 1 {
		t.Fatalf("checkpoints = %d, want 1", len(checkpoints))
	}
	if checkpoints[0].Description != "Delivered" {
		t.Fatalf("checkpoint description = %q, want raw status", checkpoints[0].Description)
	}
}

func TestHandleWebhookStatusUpdateFailureDoesNotAbortCheckpoints(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	shipment := seedShipment(t, db, "STUCK1", "", constants.ShipmentStatusPending)

	if err := db.Exec(`CREATE TRIGGER reject_shipment_updates BEFORE UPDATE ON shipments
		BEGIN SELECT RAISE(ABORT, 'update rejected'); END`).Error; err != nil {
		t.Fatalf("create trigger failed: %v", err)
	}

	// 状态写失败不能让回执报错，也不能挡住轨迹写入
	body := []byte(`{
		"trackingNumber": "STUCK1",
		"status": "delivered",
		"events": [{"description": "Delivered", "time": "2026-03-02T12:00:00Z"}]
	}`)
	if err := svc.HandleWebhook(nil, body); err != nil {
		t.Fatalf("status update failure must not surface, got %v", err)
	}

	var got models.Shipment
	if err := db.First(&got, shipment.ID).Error; err != nil {
		t.Fatalf("load shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusPending {
		t.Fatalf("status = %q, want unchanged pending", got.Status)
	}

	var count int64
	if err := db.Model(&models.Checkpoint{}).Where("shipment_id = ?", shipment.ID).Count(&count).Error; err != nil {
		t.Fatalf("count checkpoints failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("checkpoints = %d, want 1", count)
	}
}

func TestHandleWebhookLookupFailureIsAcknowledged(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	if err := db.Migrator().DropTable(&models.Shipment{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	body := []byte(`{"trackingNumber":"GONE1","status":"delivered"}`)
	if err := svc.HandleWebhook(nil, body); err != nil {
		t.Fatalf("lookup failure must not surface, got %v", err)
	}
}

func TestBuildUpdateMessageIncludesStoreAndOrder(t *testing.T) {
	svc, db := setupWebhookServiceTest(t, "")
	shipment := seedShipment(t, db, "MSG1", "dhl", constants.ShipmentStatusInTransit)

	event := &ship24.WebhookEvent{
		TrackingNumber: "MSG1",
		RawStatus:      "Out For Delivery",
		Status:         constants.ShipmentStatusOutForDelivery,
	}
	message := svc.buildUpdateMessage(&shipment, event)

	for _, want := range []string{
		"<b>Parcel Update!</b>",
		"<b>Tracking:</b> MSG1",
		"<b>New Status:</b> out_for_delivery",
		"<b>Carrier Status:</b> Out For Delivery",
		"<b>Store:</b> Amazon",
		"<b>Order ID:</b> 111-222",
	} {
		if !strings.Contains(message, want) {
			t.Fatalf("message missing %q:\n%s", want, message)
		}
	}
}
