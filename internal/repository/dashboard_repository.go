package repository

import (
	"github.com/parceldesk/internal/constants"
	"github.com/parceldesk/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	GetStatusBreakdown() ([]DashboardStatusRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	PurchasesTotal          int64
	TotalSpend              float64
	InTransitCount          int64
	DeliveredCount          int64
	RefundsInProgressCount  int64
	RefundedAmount          float64
	OpenClaimsCount         int64
	ShipmentsWithoutTracking int64
}

// DashboardStatusRow 包裹状态分布统计
type DashboardStatusRow struct {
	Status string
	Total  int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

func inTransitStatuses() []string {
	return []string{
		constants.ShipmentStatusInTransit,
		constants.ShipmentStatusOutForDelivery,
		constants.ShipmentStatusFailedAttempt,
	}
}

func refundInProgressStatuses() []string {
	return []string{
		constants.RefundStatusRequested,
		constants.RefundStatusApproved,
	}
}

func openClaimStatuses() []string {
	return []string{
		constants.ClaimStatusInitiated,
		constants.ClaimStatusItemSent,
		constants.ClaimStatusItemReceivedBySeller,
		constants.ClaimStatusResolutionOffered,
	}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	if err := r.db.Model(&models.Purchase{}).Count(&result.PurchasesTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Purchase{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&result.TotalSpend).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Shipment{}).
		Where("status IN ?", inTransitStatuses()).
		Count(&result.InTransitCount).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Shipment{}).
		Where("status = ?", constants.ShipmentStatusDelivered).
		Count(&result.DeliveredCount).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Shipment{}).
		Where("tracking_number = ''").
		Count(&result.ShipmentsWithoutTracking).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Refund{}).
		Where("status IN ?", refundInProgressStatuses()).
		Count(&result.RefundsInProgressCount).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Refund{}).
		Where("status = ?", constants.RefundStatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&result.RefundedAmount).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Claim{}).
		Where("status IN ?", openClaimStatuses()).
		Count(&result.OpenClaimsCount).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetStatusBreakdown 获取包裹状态分布
func (r *GormDashboardRepository) GetStatusBreakdown() ([]DashboardStatusRow, error) {
	rows := make([]DashboardStatusRow, 0)
	if err := r.db.Model(&models.Shipment{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Order("total desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
