package repository

import (
	"github.com/parceldesk/internal/models"

	"gorm.io/gorm"
)

// CheckpointRepository 包裹轨迹数据访问接口
// 说明：轨迹只追加，不提供更新与删除。
type CheckpointRepository interface {
	Insert(checkpoint *models.Checkpoint) error
	ListByShipment(shipmentID uint) ([]models.Checkpoint, error)
	CountByShipment(shipmentID uint) (int64, error)
}

// GormCheckpointRepository GORM 实现
type GormCheckpointRepository struct {
	db *gorm.DB
}

// NewCheckpointRepository 创建轨迹仓库
func NewCheckpointRepository(db *gorm.DB) *GormCheckpointRepository {
	return &GormCheckpointRepository{db: db}
}

// Insert 追加一条轨迹
func (r *GormCheckpointRepository) Insert(checkpoint *models.Checkpoint) error {
	return r.db.Create(checkpoint).Error
}

// ListByShipment 获取包裹轨迹（按事件时间倒序）
func (r *GormCheckpointRepository) ListByShipment(shipmentID uint) ([]models.Checkpoint, error) {
	var checkpoints []models.Checkpoint
	if err := r.db.
		Where("shipment_id = ?", shipmentID).
		Order("time desc").
		Find(&checkpoints).Error; err != nil {
		return nil, err
	}
	return checkpoints, nil
}

// CountByShipment 统计包裹轨迹条数
func (r *GormCheckpointRepository) CountByShipment(shipmentID uint) (int64, error) {
	var total int64
	if err := r.db.Model(&models.Checkpoint{}).
		Where("shipment_id = ?", shipmentID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
