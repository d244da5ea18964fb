package models

import "time"

// Checkpoint 包裹轨迹节点表
// 说明：只追加，核心流程不更新也不删除；渲染时按事件时间排序，不依赖插入顺序。
type Checkpoint struct {
	ID          uint      `gorm:"primarykey" json:"id"`                // 主键
	ShipmentID  uint      `gorm:"index;not null" json:"shipment_id"`   // 所属包裹ID
	Description string    `gorm:"type:text;not null" json:"description"` // 事件描述
	Location    string    `gorm:"type:varchar(255)" json:"location"`   // 事件地点
	Time        time.Time `gorm:"index;not null" json:"time"`          // 事件时间
	CreatedAt   time.Time `json:"created_at"`                          // 写入时间
}

// TableName 指定表名
func (Checkpoint) TableName() string {
	return "checkpoints"
}
