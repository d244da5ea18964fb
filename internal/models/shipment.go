package models

import (
	"time"

	"gorm.io/gorm"
)

// Shipment 包裹表
// 说明：status 仅允许两条路径改写——控制台手动改写与承运商 webhook 对账写入。
type Shipment struct {
	ID             uint           `gorm:"primarykey" json:"id"`                          // 主键
	PurchaseID     uint           `gorm:"index;not null" json:"purchase_id"`             // 所属购买记录ID
	TrackingNumber string         `gorm:"index" json:"tracking_number"`                  // 运单号
	Courier        string         `gorm:"index;type:varchar(100)" json:"courier"`        // 承运商
	Status         string         `gorm:"index;not null;default:pending" json:"status"`  // 当前状态（最近一次已知状态）
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间

	Checkpoints []Checkpoint `gorm:"foreignKey:ShipmentID" json:"checkpoints,omitempty"` // 轨迹节点
}

// TableName 指定表名
func (Shipment) TableName() string {
	return "shipments"
}
