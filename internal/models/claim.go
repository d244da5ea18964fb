package models

import (
	"time"

	"gorm.io/gorm"
)

// Claim 质保维权记录表
type Claim struct {
	ID                       uint           `gorm:"primarykey" json:"id"`                               // 主键
	PurchaseID               uint           `gorm:"index;not null" json:"purchase_id"`                  // 所属购买记录ID
	Status                   string         `gorm:"index;not null;default:initiated" json:"status"`     // 维权状态
	Reason                   string         `gorm:"type:text" json:"reason"`                            // 维权原因
	RMANumber                string         `gorm:"type:varchar(100)" json:"rma_number"`                // RMA 编号
	TrackingNumberToSeller   string         `gorm:"type:varchar(100)" json:"tracking_number_to_seller"`   // 寄回商家运单号
	TrackingNumberFromSeller string         `gorm:"type:varchar(100)" json:"tracking_number_from_seller"` // 商家寄回运单号
	ResolutionDetails        string         `gorm:"type:text" json:"resolution_details"`                // 处理结果说明
	CreatedAt                time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt                time.Time      `gorm:"index" json:"updated_at"`                            // 更新时间
	DeletedAt                gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Claim) TableName() string {
	return "claims"
}
