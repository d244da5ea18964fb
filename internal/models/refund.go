package models

import (
	"time"

	"gorm.io/gorm"
)

// Refund 退款记录表
type Refund struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                             // 主键
	PurchaseID           uint           `gorm:"index;not null" json:"purchase_id"`                // 所属购买记录ID
	Status               string         `gorm:"index;not null;default:requested" json:"status"`   // 退款状态
	Amount               *Money         `gorm:"type:decimal(20,2)" json:"amount"`                 // 退款金额
	Platform             string         `gorm:"type:varchar(100)" json:"platform"`                // 退款平台
	Reason               string         `gorm:"type:text" json:"reason"`                          // 退款原因
	RMANumber            string         `gorm:"type:varchar(100)" json:"rma_number"`              // RMA 编号
	RefundStartDate      *time.Time     `json:"refund_start_date"`                                // 退款发起日期
	ApprovedAt           *time.Time     `json:"approved_at"`                                      // 审批通过时间
	PaidAt               *time.Time     `json:"paid_at"`                                          // 打款时间
	ReturnTrackingNumber string         `gorm:"type:varchar(100)" json:"return_tracking_number"`  // 退货运单号
	ReturnCourier        string         `gorm:"type:varchar(100)" json:"return_courier"`          // 退货承运商
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                          // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间
}

// TableName 指定表名
func (Refund) TableName() string {
	return "refunds"
}
