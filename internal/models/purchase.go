package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase 购买记录表
type Purchase struct {
	ID              uint           `gorm:"primarykey" json:"id"`                       // 主键
	UserID          uint           `gorm:"index;not null" json:"user_id"`              // 用户ID
	StoreName       string         `gorm:"index;not null" json:"store_name"`           // 店铺名称
	OrderID         string         `gorm:"index;not null" json:"order_id"`             // 订单编号（商家侧）
	OrderDate       time.Time      `gorm:"index;not null" json:"order_date"`           // 下单日期
	Amount          *Money         `gorm:"type:decimal(20,2)" json:"amount"`           // 订单金额
	PaymentMethod   string         `gorm:"type:varchar(100)" json:"payment_method"`    // 支付方式
	EmailUsed       string         `gorm:"type:varchar(200)" json:"email_used"`        // 下单邮箱
	PhoneNumber     string         `gorm:"type:varchar(50)" json:"phone_number"`       // 联系电话
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`          // 收货地址
	Notes           string         `gorm:"type:text" json:"notes"`                     // 备注
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                    // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间

	// 关联
	Shipments []Shipment `gorm:"foreignKey:PurchaseID" json:"shipments,omitempty"` // 包裹
	Refunds   []Refund   `gorm:"foreignKey:PurchaseID" json:"refunds,omitempty"`   // 退款
	Claims    []Claim    `gorm:"foreignKey:PurchaseID" json:"claims,omitempty"`    // 质保维权
}

// TableName 指定表名
func (Purchase) TableName() string {
	return "purchases"
}
