package console

import (
	handlershared "github.com/parceldesk/internal/http/handlers/shared"
	"github.com/parceldesk/internal/http/response"
	"github.com/parceldesk/internal/service"

	"github.com/gin-gonic/gin"
)

// ClaimRequest 创建/更新维权请求
type ClaimRequest struct {
	PurchaseID               uint   `json:"purchase_id"`
	Status                   string `json:"status"`
	Reason                   string `json:"reason"`
	RMANumber                string `json:"rma_number"`
	TrackingNumberToSeller   string `json:"tracking_number_to_seller"`
	TrackingNumberFromSeller string `json:"tracking_number_from_seller"`
	ResolutionDetails        string `json:"resolution_details"`
}

// ClaimListQuery 维权列表查询参数
type ClaimListQuery struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	PurchaseID uint   `form:"purchase_id"`
	Status     string `form:"status"`
}

// ListClaims 获取维权列表
func (h *Handler) ListClaims(c *gin.Context) {
	var query ClaimListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	claims, total, err := h.ClaimService.List(query.PurchaseID, query.Status, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "claim list failed", err)
		return
	}
	response.SuccessWithPage(c, claims, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetClaim 获取维权详情
func (h *Handler) GetClaim(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claim, err := h.ClaimService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "claim fetch failed")
		return
	}
	response.Success(c, claim)
}

// CreateClaim 创建维权记录
func (h *Handler) CreateClaim(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if req.PurchaseID == 0 {
		respondError(c, response.CodeBadRequest, "purchase_id required", nil)
		return
	}

	claim, err := h.ClaimService.Create(claimInputFromRequest(req))
	if err != nil {
		respondServiceError(c, err, "claim create failed")
		return
	}
	requestLog(c).Infow("claim_created",
		"claim_id", claim.ID,
		"purchase_id", claim.PurchaseID,
		"status", claim.Status,
	)
	response.Success(c, claim)
}

// UpdateClaim 更新维权记录
func (h *Handler) UpdateClaim(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	claim, err := h.ClaimService.Update(id, claimInputFromRequest(req))
	if err != nil {
		respondServiceError(c, err, "claim update failed")
		return
	}
	response.Success(c, claim)
}

// DeleteClaim 删除维权记录
func (h *Handler) DeleteClaim(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ClaimService.Delete(id); err != nil {
		respondServiceError(c, err, "claim delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func claimInputFromRequest(req ClaimRequest) service.ClaimInput {
	return service.ClaimInput{
		PurchaseID:               req.PurchaseID,
		Status:                   req.Status,
		Reason:                   req.Reason,
		RMANumber:                req.RMANumber,
		TrackingNumberToSeller:   req.TrackingNumberToSeller,
		TrackingNumberFromSeller: req.TrackingNumberFromSeller,
		ResolutionDetails:        req.ResolutionDetails,
	}
}
