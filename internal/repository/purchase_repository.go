package repository

import (
	"errors"

	"github.com/parceldesk/internal/models"

	"gorm.io/gorm"
)

// PurchaseRepository 购买记录数据访问接口
type PurchaseRepository interface {
	Create(purchase *models.Purchase) error
	GetByID(id uint) (*models.Purchase, error)
	List(filter PurchaseListFilter) ([]models.Purchase, int64, error)
	Update(purchase *models.Purchase) error
	UpdateFields(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// GormPurchaseRepository GORM 实现
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建购买记录仓库
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Create 创建购买记录
func (r *GormPurchaseRepository) Create(purchase *models.Purchase) error {
	return r.db.Create(purchase).Error
}

// GetByID 根据 ID 获取购买记录（携带包裹、退款、维权）
func (r *GormPurchaseRepository) GetByID(id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	query := r.db.
		Preload("Shipments").
		Preload("Shipments.Checkpoints", func(db *gorm.DB) *gorm.DB {
			return db.Order("time desc")
		}).
		Preload("Refunds").
		Preload("Claims")
	if err := query.First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// List 获取购买记录列表
func (r *GormPurchaseRepository) List(filter PurchaseListFilter) ([]models.Purchase, int64, error) {
	var purchases []models.Purchase
	query := r.db.Model(&models.Purchase{})

	if filter.StoreName != "" {
		query = query.Where("store_name = ?", filter.StoreName)
	}
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("store_name LIKE ? OR order_id LIKE ? OR notes LIKE ?", keyword, keyword, keyword)
	}
	if filter.OrderDateFrom != nil {
		query = query.Where("order_date >= ?", *filter.OrderDateFrom)
	}
	if filter.OrderDateTo != nil {
		query = query.Where("order_date <= ?", *filter.OrderDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if filter.WithShipments {
		query = query.Preload("Shipments")
	}
	if filter.WithRefunds {
		query = query.Preload("Refunds")
	}
	if filter.WithClaims {
		query = query.Preload("Claims")
	}

	if err := query.Order("order_date desc, id desc").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// Update 保存购买记录
func (r *GormPurchaseRepository) Update(purchase *models.Purchase) error {
	return r.db.Save(purchase).Error
}

// UpdateFields 按字段更新购买记录
func (r *GormPurchaseRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Purchase{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除购买记录（软删除）
func (r *GormPurchaseRepository) Delete(id uint) error {
	return r.db.Delete(&models.Purchase{}, id).Error
}
