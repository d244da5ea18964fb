package service

import (
	"context"
	"time"

	"github.com/parceldesk/internal/cache"
	"github.com/parceldesk/internal/logger"
	"github.com/parceldesk/internal/repository"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 60 * time.Second
)

// DashboardService 仪表盘业务服务
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardStats 仪表盘统计结果
type DashboardStats struct {
	PurchasesTotal           int64                    `json:"purchases_total"`
	TotalSpend               float64                  `json:"total_spend"`
	InTransitCount           int64                    `json:"in_transit_count"`
	DeliveredCount           int64                    `json:"delivered_count"`
	ShipmentsWithoutTracking int64                    `json:"shipments_without_tracking"`
	RefundsInProgressCount   int64                    `json:"refunds_in_progress_count"`
	RefundedAmount           float64                  `json:"refunded_amount"`
	OpenClaimsCount          int64                    `json:"open_claims_count"`
	StatusBreakdown          []DashboardStatusBucket  `json:"status_breakdown"`
	GeneratedAt              time.Time                `json:"generated_at"`
}

// DashboardStatusBucket 包裹状态分布条目
type DashboardStatusBucket struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// GetStats 获取仪表盘统计（带 60 秒缓存）
func (s *DashboardService) GetStats(ctx context.Context) (DashboardStats, error) {
	var cached DashboardStats
	if hit, err := cache.GetJSON(ctx, dashboardCacheKey, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		logger.Warnw("dashboard_cache_read_failed", "error", err)
	}

	overview, err := s.repo.GetOverview()
	if err != nil {
		return DashboardStats{}, err
	}
	breakdown, err := s.repo.GetStatusBreakdown()
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		PurchasesTotal:           overview.PurchasesTotal,
		TotalSpend:               overview.TotalSpend,
		InTransitCount:           overview.InTransitCount,
		DeliveredCount:           overview.DeliveredCount,
		ShipmentsWithoutTracking: overview.ShipmentsWithoutTracking,
		RefundsInProgressCount:   overview.RefundsInProgressCount,
		RefundedAmount:           overview.RefundedAmount,
		OpenClaimsCount:          overview.OpenClaimsCount,
		GeneratedAt:              time.Now(),
	}
	stats.StatusBreakdown = make([]DashboardStatusBucket, 0, len(breakdown))
	for _, row := range breakdown {
		stats.StatusBreakdown = append(stats.StatusBreakdown, DashboardStatusBucket{
			Status: row.Status,
			Total:  row.Total,
		})
	}

	if err := cache.SetJSON(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "error", err)
	}
	return stats, nil
}
