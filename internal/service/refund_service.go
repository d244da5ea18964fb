package service

import (
	"strings"
	"time"

	"github.com/parceldesk/internal/constants"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/repository"
)

// RefundService 退款业务服务
type RefundService struct {
	repo         repository.RefundRepository
	purchaseRepo repository.PurchaseRepository
}

// NewRefundService 创建退款服务
func NewRefundService(repo repository.RefundRepository, purchaseRepo repository.PurchaseRepository) *RefundService {
	return &RefundService{repo: repo, purchaseRepo: purchaseRepo}
}

// RefundInput 创建/更新退款输入
type RefundInput struct {
	PurchaseID           uint
	Status               string
	Amount               *models.Money
	Platform             string
	Reason               string
	RMANumber            string
	RefundStartDate      *time.Time
	ReturnTrackingNumber string
	ReturnCourier        string
}

func isKnownRefundStatus(status string) bool {
	switch status {
	case constants.RefundStatusRequested,
		constants.RefundStatusApproved,
		constants.RefundStatusPaid,
		constants.RefundStatusDenied:
		return true
	}
	return false
}

// List 获取退款列表
func (s *RefundService) List(purchaseID uint, status, platform string, page, pageSize int) ([]models.Refund, int64, error) {
	filter := repository.RefundListFilter{
		Page:       page,
		PageSize:   pageSize,
		PurchaseID: purchaseID,
		Status:     strings.TrimSpace(status),
		Platform:   strings.TrimSpace(platform),
	}
	return s.repo.List(filter)
}

// GetByID 根据 ID 获取退款记录
func (s *RefundService) GetByID(id uint) (*models.Refund, error) {
	refund, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, ErrNotFound
	}
	return refund, nil
}

// Create 创建退款记录
func (s *RefundService) Create(input RefundInput) (*models.Refund, error) {
	purchase, err := s.purchaseRepo.GetByID(input.PurchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrNotFound
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.RefundStatusRequested
	}
	if !isKnownRefundStatus(status) {
		return nil, ErrStatusInvalid
	}

	refund := &models.Refund{
		PurchaseID:           input.PurchaseID,
		Status:               status,
		Amount:               input.Amount,
		Platform:             strings.TrimSpace(input.Platform),
		Reason:               strings.TrimSpace(input.Reason),
		RMANumber:            strings.TrimSpace(input.RMANumber),
		RefundStartDate:      input.RefundStartDate,
		ReturnTrackingNumber: strings.TrimSpace(input.ReturnTrackingNumber),
		ReturnCourier:        strings.TrimSpace(input.ReturnCourier),
	}
	applyRefundStatusTimestamps(refund, status)

	if err := s.repo.Create(refund); err != nil {
		return nil, err
	}
	return refund, nil
}

// Update 更新退款记录
func (s *RefundService) Update(id uint, input RefundInput) (*models.Refund, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	status := strings.TrimSpace(input.Status)
	if status != "" && !isKnownRefundStatus(status) {
		return nil, ErrStatusInvalid
	}
	if status != "" && status != existing.Status {
		existing.Status = status
		applyRefundStatusTimestamps(existing, status)
	}

	existing.Amount = input.Amount
	existing.Platform = strings.TrimSpace(input.Platform)
	existing.Reason = strings.TrimSpace(input.Reason)
	existing.RMANumber = strings.TrimSpace(input.RMANumber)
	if input.RefundStartDate != nil {
		existing.RefundStartDate = input.RefundStartDate
	}
	existing.ReturnTrackingNumber = strings.TrimSpace(input.ReturnTrackingNumber)
	existing.ReturnCourier = strings.TrimSpace(input.ReturnCourier)

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除退款记录
func (s *RefundService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// applyRefundStatusTimestamps 状态推进时写里程碑时间，已有值不覆盖
func applyRefundStatusTimestamps(refund *models.Refund, status string) {
	now := time.Now()
	switch status {
	case constants.RefundStatusApproved:
		if refund.ApprovedAt == nil {
			refund.ApprovedAt = &now
		}
	case constants.RefundStatusPaid:
		if refund.ApprovedAt == nil {
			refund.ApprovedAt = &now
		}
		if refund.PaidAt == nil {
			refund.PaidAt = &now
		}
	}
}
