package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/parceldesk/internal/constants"
	"github.com/parceldesk/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupShipmentRepositoryTest(t *testing.T) (*GormShipmentRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:shipment_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Purchase{},
		&models.Shipment{},
		&models.Checkpoint{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewShipmentRepository(db), db
}

func createTestPurchase(t *testing.T, db *gorm.DB) models.Purchase {
	t.Helper()
	purchase := models.Purchase{
		UserID:    1,
		StoreName: "AliExpress",
		OrderID:   "ORD-1001",
		OrderDate: time.Now().UTC().Truncate(time.Second),
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}
	return purchase
}

func TestShipmentRepositoryFindByTracking(t *testing.T) {
	repo, db := setupShipmentRepositoryTest(t)
	purchase := createTestPurchase(t, db)

	first := models.Shipment{
		PurchaseID:     purchase.ID,
		TrackingNumber: "LP000111222CN",
		Courier:        "cainiao",
		Status:         constants.ShipmentStatusPending,
	}
	second := models.Shipment{
		PurchaseID:     purchase.ID,
		TrackingNumber: "LP000111222CN",
		Courier:        "yanwen",
		Status:         constants.ShipmentStatusPending,
	}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create first shipment failed: %v", err)
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("create second shipment failed: %v", err)
	}

	// 不带承运商时命中第一行
	found, err := repo.FindByTracking("LP000111222CN", "")
	if err != nil {
		t.Fatalf("find by tracking failed: %v", err)
	}
	if found == nil || found.ID != first.ID {
		t.Fatalf("expected first shipment, got %+v", found)
	}

	// 承运商过滤可以命中第二行
	found, err = repo.FindByTracking("LP000111222CN", "yanwen")
	if err != nil {
		t.Fatalf("find by tracking with courier failed: %v", err)
	}
	if found == nil || found.ID != second.ID {
		t.Fatalf("expected second shipment, got %+v", found)
	}

	// 未知运单号返回 nil, nil
	found, err = repo.FindByTracking("UNKNOWN", "")
	if err != nil {
		t.Fatalf("find unknown tracking failed: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for unknown tracking, got %+v", found)
	}

	// 空运单号直接返回 nil, nil
	found, err = repo.FindByTracking("", "")
	if err != nil {
		t.Fatalf("find empty tracking failed: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for empty tracking, got %+v", found)
	}
}

func TestShipmentRepositoryUpdateStatusOverwrites(t *testing.T) {
	repo, db := setupShipmentRepositoryTest(t)
	purchase := createTestPurchase(t, db)

	shipment := models.Shipment{
		PurchaseID:     purchase.ID,
		TrackingNumber: "1Z999AA10123456784",
		Courier:        "ups",
		Status:         constants.ShipmentStatusDelivered,
	}
	if err := db.Create(&shipment).Error; err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}

	// 状态覆盖不做新旧比较，delivered 也可以被改回 in_transit
	if err := repo.UpdateStatus(shipment.ID, constants.ShipmentStatusInTransit); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	got, err := repo.GetByID(shipment.ID)
	if err != nil {
		t.Fatalf("get shipment failed: %v", err)
	}
	if got.Status != constants.ShipmentStatusInTransit {
		t.Fatalf("status = %q, want %q", got.Status, constants.ShipmentStatusInTransit)
	}
}

func TestShipmentRepositoryListFilters(t *testing.T) {
	repo, db := setupShipmentRepositoryTest(t)
	purchase := createTestPurchase(t, db)

	shipments := []models.Shipment{
		{PurchaseID: purchase.ID, TrackingNumber: "AA1", Courier: "ups", Status: constants.ShipmentStatusInTransit},
		{PurchaseID: purchase.ID, TrackingNumber: "AA2", Courier: "usps", Status: constants.ShipmentStatusDelivered},
		{PurchaseID: purchase.ID, TrackingNumber: "BB1", Courier: "ups", Status: constants.ShipmentStatusDelivered},
	}
	for i := range shipments {
		if err := db.Create(&shipments[i]).Error; err != nil {
			t.Fatalf("create shipment %d failed: %v", i, err)
		}
	}

	list, total, err := repo.List(ShipmentListFilter{Status: constants.ShipmentStatusDelivered})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 delivered shipments, got total=%d len=%d", total, len(list))
	}

	list, total, err = repo.List(ShipmentListFilter{Courier: "ups", TrackingNumber: "AA"})
	if err != nil {
		t.Fatalf("list by courier and tracking failed: %v", err)
	}
	if total != 1 || list[0].TrackingNumber != "AA1" {
		t.Fatalf("unexpected filter result: total=%d list=%+v", total, list)
	}

	list, total, err = repo.List(ShipmentListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list with pagination failed: %v", err)
	}
	if total != 3 || len(list) != 1 {
		t.Fatalf("expected page 2 to hold 1 of 3, got total=%d len=%d", total, len(list))
	}
}

func TestCheckpointRepositoryAppendOnly(t *testing.T) {
	_, db := setupShipmentRepositoryTest(t)
	purchase := createTestPurchase(t, db)
	repo := NewCheckpointRepository(db)

	shipment := models.Shipment{
		PurchaseID: purchase.ID,
		Status:     constants.ShipmentStatusInTransit,
	}
	if err := db.Create(&shipment).Error; err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}

	earlier := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)
	if err := repo.Insert(&models.Checkpoint{ShipmentID: shipment.ID, Description: "Accepted", Time: earlier}); err != nil {
		t.Fatalf("insert checkpoint failed: %v", err)
	}
	if err := repo.Insert(&models.Checkpoint{ShipmentID: shipment.ID, Description: "Departed", Time: later}); err != nil {
		t.Fatalf("insert checkpoint failed: %v", err)
	}

	checkpoints, err := repo.ListByShipment(shipment.ID)
	if err != nil {
		t.Fatalf("list checkpoints failed: %v", err)
	}
	if len(checkpoints) != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", len(checkpoints))
	}
	// 按事件时间倒序，而非插入顺序
	if checkpoints[0].Description != "Departed" {
		t.Fatalf("expected newest checkpoint first, got %q", checkpoints[0].Description)
	}

	total, err := repo.CountByShipment(shipment.ID)
	if err != nil {
		t.Fatalf("count checkpoints failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("count = %d, want 2", total)
	}
}
