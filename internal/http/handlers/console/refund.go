package console

import (
	handlershared "github.com/parceldesk/internal/http/handlers/shared"
	"github.com/parceldesk/internal/http/response"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/service"

	"github.com/gin-gonic/gin"
)

// RefundRequest 创建/更新退款请求
type RefundRequest struct {
	PurchaseID           uint          `json:"purchase_id"`
	Status               string        `json:"status"`
	Amount               *models.Money `json:"amount"`
	Platform             string        `json:"platform"`
	Reason               string        `json:"reason"`
	RMANumber            string        `json:"rma_number"`
	RefundStartDate      string        `json:"refund_start_date"`
	ReturnTrackingNumber string        `json:"return_tracking_number"`
	ReturnCourier        string        `json:"return_courier"`
}

// RefundListQuery 退款列表查询参数
type RefundListQuery struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	PurchaseID uint   `form:"purchase_id"`
	Status     string `form:"status"`
	Platform   string `form:"platform"`
}

// ListRefunds 获取退款列表
func (h *Handler) ListRefunds(c *gin.Context) {
	var query RefundListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	refunds, total, err := h.RefundService.List(query.PurchaseID, query.Status, query.Platform, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "refund list failed", err)
		return
	}
	response.SuccessWithPage(c, refunds, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetRefund 获取退款详情
func (h *Handler) GetRefund(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	refund, err := h.RefundService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "refund fetch failed")
		return
	}
	response.Success(c, refund)
}

// CreateRefund 创建退款记录
func (h *Handler) CreateRefund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if req.PurchaseID == 0 {
		respondError(c, response.CodeBadRequest, "purchase_id required", nil)
		return
	}
	input, ok := refundInputFromRequest(c, req)
	if !ok {
		return
	}

	refund, err := h.RefundService.Create(input)
	if err != nil {
		respondServiceError(c, err, "refund create failed")
		return
	}
	requestLog(c).Infow("refund_created",
		"refund_id", refund.ID,
		"purchase_id", refund.PurchaseID,
		"status", refund.Status,
	)
	response.Success(c, refund)
}

// UpdateRefund 更新退款记录
func (h *Handler) UpdateRefund(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, ok := refundInputFromRequest(c, req)
	if !ok {
		return
	}

	refund, err := h.RefundService.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "refund update failed")
		return
	}
	response.Success(c, refund)
}

// DeleteRefund 删除退款记录
func (h *Handler) DeleteRefund(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.RefundService.Delete(id); err != nil {
		respondServiceError(c, err, "refund delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func refundInputFromRequest(c *gin.Context, req RefundRequest) (service.RefundInput, bool) {
	startDate, ok := parseDateParam(req.RefundStartDate)
	if !ok {
		respondError(c, response.CodeBadRequest, "refund start date invalid", nil)
		return service.RefundInput{}, false
	}
	return service.RefundInput{
		PurchaseID:           req.PurchaseID,
		Status:               req.Status,
		Amount:               req.Amount,
		Platform:             req.Platform,
		Reason:               req.Reason,
		RMANumber:            req.RMANumber,
		RefundStartDate:      startDate,
		ReturnTrackingNumber: req.ReturnTrackingNumber,
		ReturnCourier:        req.ReturnCourier,
	}, true
}
