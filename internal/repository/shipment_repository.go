package repository

import (
	"errors"

	"github.com/parceldesk/internal/models"

	"gorm.io/gorm"
)

// ShipmentRepository 包裹数据访问接口
type ShipmentRepository interface {
	Create(shipment *models.Shipment) error
	GetByID(id uint) (*models.Shipment, error)
	FindByTracking(trackingNumber, courier string) (*models.Shipment, error)
	List(filter ShipmentListFilter) ([]models.Shipment, int64, error)
	Update(shipment *models.Shipment) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
}

// GormShipmentRepository GORM 实现
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository 创建包裹仓库
func NewShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Create 创建包裹
func (r *GormShipmentRepository) Create(shipment *models.Shipment) error {
	return r.db.Create(shipment).Error
}

// GetByID 根据 ID 获取包裹（轨迹按事件时间倒序）
func (r *GormShipmentRepository) GetByID(id uint) (*models.Shipment, error) {
	var shipment models.Shipment
	query := r.db.Preload("Checkpoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("time desc")
	})
	if err := query.First(&shipment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipment, nil
}

// FindByTracking 按运单号查找包裹。
// courier 非空时附加承运商过滤；同一运单号存在多行时仅取第一行。
func (r *GormShipmentRepository) FindByTracking(trackingNumber, courier string) (*models.Shipment, error) {
	if trackingNumber == "" {
		return nil, nil
	}
	var shipment models.Shipment
	query := r.db.Where("tracking_number = ?", trackingNumber)
	if courier != "" {
		query = query.Where("courier = ?", courier)
	}
	if err := query.Order("id asc").Limit(1).First(&shipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipment, nil
}

// List 获取包裹列表
func (r *GormShipmentRepository) List(filter ShipmentListFilter) ([]models.Shipment, int64, error) {
	var shipments []models.Shipment
	query := r.db.Model(&models.Shipment{})

	if filter.PurchaseID != 0 {
		query = query.Where("purchase_id = ?", filter.PurchaseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Courier != "" {
		query = query.Where("courier = ?", filter.Courier)
	}
	if filter.TrackingNumber != "" {
		query = query.Where("tracking_number LIKE ?", "%"+filter.TrackingNumber+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if filter.WithCheckpoints {
		query = query.Preload("Checkpoints", func(db *gorm.DB) *gorm.DB {
			return db.Order("time desc")
		})
	}

	if err := query.Order("id desc").Find(&shipments).Error; err != nil {
		return nil, 0, err
	}
	return shipments, total, nil
}

// Update 保存包裹
func (r *GormShipmentRepository) Update(shipment *models.Shipment) error {
	return r.db.Save(shipment).Error
}

// UpdateStatus 改写包裹状态。
// 无条件覆盖，不比较新旧状态，乱序到达的 webhook 以最后写入为准。
func (r *GormShipmentRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Shipment{}).Where("id = ?", id).Update("status", status).Error
}

// Delete 删除包裹（软删除）
func (r *GormShipmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Shipment{}, id).Error
}
