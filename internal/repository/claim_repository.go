package repository

import (
	"errors"

	"github.com/parceldesk/internal/models"

	"gorm.io/gorm"
)

// ClaimRepository 质保维权数据访问接口
type ClaimRepository interface {
	Create(claim *models.Claim) error
	GetByID(id uint) (*models.Claim, error)
	List(filter ClaimListFilter) ([]models.Claim, int64, error)
	Update(claim *models.Claim) error
	Delete(id uint) error
}

// GormClaimRepository GORM 实现
type GormClaimRepository struct {
	db *gorm.DB
}

// NewClaimRepository 创建质保维权仓库
func NewClaimRepository(db *gorm.DB) *GormClaimRepository {
	return &GormClaimRepository{db: db}
}

// Create 创建维权记录
func (r *GormClaimRepository) Create(claim *models.Claim) error {
	return r.db.Create(claim).Error
}

// GetByID 根据 ID 获取维权记录
func (r *GormClaimRepository) GetByID(id uint) (*models.Claim, error) {
	var claim models.Claim
	if err := r.db.First(&claim, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

// List 获取维权列表
func (r *GormClaimRepository) List(filter ClaimListFilter) ([]models.Claim, int64, error) {
	var claims []models.Claim
	query := r.db.Model(&models.Claim{})

	if filter.PurchaseID != 0 {
		query = query.Where("purchase_id = ?", filter.PurchaseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&claims).Error; err != nil {
		return nil, 0, err
	}
	return claims, total, nil
}

// Update 保存维权记录
func (r *GormClaimRepository) Update(claim *models.Claim) error {
	return r.db.Save(claim).Error
}

// Delete 删除维权记录（软删除）
func (r *GormClaimRepository) Delete(id uint) error {
	return r.db.Delete(&models.Claim{}, id).Error
}
