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

func TestApplyPaginationClampsPageSize(t *testing.T) {
	dsn := fmt.Sprintf("file:pagination_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Purchase{}, &models.Shipment{}, &models.Checkpoint{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	purchase := models.Purchase{UserID: 1, StoreName: "Amazon", OrderID: "ORD-PAGE", OrderDate: time.Now()}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		shipment := models.Shipment{
			PurchaseID:     purchase.ID,
			TrackingNumber: fmt.Sprintf("PG%03d", i),
			Status:         constants.ShipmentStatusPending,
		}
		if err := db.Create(&shipment).Error; err != nil {
			t.Fatalf("create shipment failed: %v", err)
		}
	}
	repo := NewShipmentRepository(db)

	// 超限 pageSize 收敛到上限，不会因为溢出偏移漏数据
	list, total, err := repo.List(ShipmentListFilter{Page: 1, PageSize: maxPageSize * 10})
	if err != nil {
		t.Fatalf("list with oversized page failed: %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Fatalf("expected all 3 shipments, got total=%d len=%d", total, len(list))
	}

	// 非法页码按第 1 页处理
	list, _, err = repo.List(ShipmentListFilter{Page: -1, PageSize: 2})
	if err != nil {
		t.Fatalf("list with negative page failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected first page of 2, got %d", len(list))
	}
}
