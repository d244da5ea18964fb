package service

import (
	"strings"

	"github.com/parceldesk/internal/constants"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/repository"
)

// ClaimService 质保维权业务服务
type ClaimService struct {
	repo         repository.ClaimRepository
	purchaseRepo repository.PurchaseRepository
}

// NewClaimService 创建维权服务
func NewClaimService(repo repository.ClaimRepository, purchaseRepo repository.PurchaseRepository) *ClaimService {
	return &ClaimService{repo: repo, purchaseRepo: purchaseRepo}
}

// ClaimInput 创建/更新维权输入
type ClaimInput struct {
	PurchaseID               uint
	Status                   string
	Reason                   string
	RMANumber                string
	TrackingNumberToSeller   string
	TrackingNumberFromSeller string
	ResolutionDetails        string
}

func isKnownClaimStatus(status string) bool {
	switch status {
	case constants.ClaimStatusInitiated,
		constants.ClaimStatusItemSent,
		constants.ClaimStatusItemReceivedBySeller,
		constants.ClaimStatusResolutionOffered,
		constants.ClaimStatusResolvedClosed,
		constants.ClaimStatusDenied:
		return true
	}
	return false
}

// List 获取维权列表
func (s *ClaimService) List(purchaseID uint, status string, page, pageSize int) ([]models.Claim, int64, error) {
	filter := repository.ClaimListFilter{
		Page:       page,
		PageSize:   pageSize,
		PurchaseID: purchaseID,
		Status:     strings.TrimSpace(status),
	}
	return s.repo.List(filter)
}

// GetByID 根据 ID 获取维权记录
func (s *ClaimService) GetByID(id uint) (*models.Claim, error) {
	claim, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, ErrNotFound
	}
	return claim, nil
}

// Create 创建维权记录
func (s *ClaimService) Create(input ClaimInput) (*models.Claim, error) {
	purchase, err := s.purchaseRepo.GetByID(input.PurchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrNotFound
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ClaimStatusInitiated
	}
	if !isKnownClaimStatus(status) {
		return nil, ErrStatusInvalid
	}

	claim := &models.Claim{
		PurchaseID:               input.PurchaseID,
		Status:                   status,
		Reason:                   strings.TrimSpace(input.Reason),
		RMANumber:                strings.TrimSpace(input.RMANumber),
		TrackingNumberToSeller:   strings.TrimSpace(input.TrackingNumberToSeller),
		TrackingNumberFromSeller: strings.TrimSpace(input.TrackingNumberFromSeller),
		ResolutionDetails:        strings.TrimSpace(input.ResolutionDetails),
	}
	if err := s.repo.Create(claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// Update 更新维权记录
func (s *ClaimService) Update(id uint, input ClaimInput) (*models.Claim, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	status := strings.TrimSpace(input.Status)
	if status != "" {
		if !isKnownClaimStatus(status) {
			return nil, ErrStatusInvalid
		}
		existing.Status = status
	}

	existing.Reason = strings.TrimSpace(input.Reason)
	existing.RMANumber = strings.TrimSpace(input.RMANumber)
	existing.TrackingNumberToSeller = strings.TrimSpace(input.TrackingNumberToSeller)
	existing.TrackingNumberFromSeller = strings.TrimSpace(input.TrackingNumberFromSeller)
	existing.ResolutionDetails = strings.TrimSpace(input.ResolutionDetails)

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除维权记录
func (s *ClaimService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
