package service

import (
	"strings"
	"time"

	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/repository"
)

// PurchaseService 购买记录业务服务
type PurchaseService struct {
	repo repository.PurchaseRepository
}

// NewPurchaseService 创建购买记录服务
func NewPurchaseService(repo repository.PurchaseRepository) *PurchaseService {
	return &PurchaseService{repo: repo}
}

// PurchaseInput 创建/更新购买记录输入
type PurchaseInput struct {
	StoreName       string
	OrderID         string
	OrderDate       time.Time
	Amount          *models.Money
	PaymentMethod   string
	EmailUsed       string
	PhoneNumber     string
	ShippingAddress string
	Notes           string
}

// List 获取购买记录列表
func (s *PurchaseService) List(search, storeName string, from, to *time.Time, page, pageSize int) ([]models.Purchase, int64, error) {
	filter := repository.PurchaseListFilter{
		Page:          page,
		PageSize:      pageSize,
		StoreName:     strings.TrimSpace(storeName),
		Search:        strings.TrimSpace(search),
		OrderDateFrom: from,
		OrderDateTo:   to,
		WithShipments: true,
		WithRefunds:   true,
		WithClaims:    true,
	}
	return s.repo.List(filter)
}

// GetByID 根据 ID 获取购买记录
func (s *PurchaseService) GetByID(id uint) (*models.Purchase, error) {
	purchase, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrNotFound
	}
	return purchase, nil
}

// Create 创建购买记录
func (s *PurchaseService) Create(userID uint, input PurchaseInput) (*models.Purchase, error) {
	purchase := &models.Purchase{
		UserID:          userID,
		StoreName:       strings.TrimSpace(input.StoreName),
		OrderID:         strings.TrimSpace(input.OrderID),
		OrderDate:       input.OrderDate,
		Amount:          input.Amount,
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		EmailUsed:       strings.TrimSpace(input.EmailUsed),
		PhoneNumber:     strings.TrimSpace(input.PhoneNumber),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		Notes:           strings.TrimSpace(input.Notes),
	}
	if err := s.repo.Create(purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// Update 更新购买记录
func (s *PurchaseService) Update(id uint, input PurchaseInput) (*models.Purchase, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	existing.StoreName = strings.TrimSpace(input.StoreName)
	existing.OrderID = strings.TrimSpace(input.OrderID)
	existing.OrderDate = input.OrderDate
	existing.Amount = input.Amount
	existing.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	existing.EmailUsed = strings.TrimSpace(input.EmailUsed)
	existing.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	existing.ShippingAddress = strings.TrimSpace(input.ShippingAddress)
	existing.Notes = strings.TrimSpace(input.Notes)

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除购买记录
func (s *PurchaseService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
