package repository

import "time"

// PurchaseListFilter 查询购买记录列表的过滤条件
type PurchaseListFilter struct {
	Page           int
	PageSize       int
	StoreName      string
	Search         string
	OrderDateFrom  *time.Time
	OrderDateTo    *time.Time
	WithShipments  bool
	WithRefunds    bool
	WithClaims     bool
}

// ShipmentListFilter 查询包裹列表的过滤条件
type ShipmentListFilter struct {
	Page            int
	PageSize        int
	PurchaseID      uint
	Status          string
	Courier         string
	TrackingNumber  string
	WithCheckpoints bool
}

// RefundListFilter 查询退款列表的过滤条件
type RefundListFilter struct {
	Page       int
	PageSize   int
	PurchaseID uint
	Status     string
	Platform   string
}

// ClaimListFilter 查询质保维权列表的过滤条件
type ClaimListFilter struct {
	Page       int
	PageSize   int
	PurchaseID uint
	Status     string
}
