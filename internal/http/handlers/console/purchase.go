package console

import (
	"time"

	handlershared "github.com/parceldesk/internal/http/handlers/shared"
	"github.com/parceldesk/internal/http/response"
	"github.com/parceldesk/internal/models"
	"github.com/parceldesk/internal/service"

	"github.com/gin-gonic/gin"
)

// PurchaseRequest 创建/更新购买记录请求
type PurchaseRequest struct {
	StoreName       string        `json:"store_name" binding:"required"`
	OrderID         string        `json:"order_id" binding:"required"`
	OrderDate       string        `json:"order_date" binding:"required"`
	Amount          *models.Money `json:"amount"`
	PaymentMethod   string        `json:"payment_method"`
	EmailUsed       string        `json:"email_used"`
	PhoneNumber     string        `json:"phone_number"`
	ShippingAddress string        `json:"shipping_address"`
	Notes           string        `json:"notes"`
}

// PurchaseListQuery 购买记录列表查询参数
type PurchaseListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Store    string `form:"store"`
	From     string `form:"from"`
	To       string `form:"to"`
}

// parseDateParam 解析日期参数，接受日期或 RFC3339 时间
func parseDateParam(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, true
		}
	}
	return nil, false
}

// ListPurchases 获取购买记录列表
func (h *Handler) ListPurchases(c *gin.Context) {
	var query PurchaseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	from, ok := parseDateParam(query.From)
	if !ok {
		respondError(c, response.CodeBadRequest, "from date invalid", nil)
		return
	}
	to, ok := parseDateParam(query.To)
	if !ok {
		respondError(c, response.CodeBadRequest, "to date invalid", nil)
		return
	}

	purchases, total, err := h.PurchaseService.List(query.Search, query.Store, from, to, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "purchase list failed", err)
		return
	}
	response.SuccessWithPage(c, purchases, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetPurchase 获取购买记录详情
func (h *Handler) GetPurchase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	purchase, err := h.PurchaseService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "purchase fetch failed")
		return
	}
	response.Success(c, purchase)
}

// CreatePurchase 创建购买记录
func (h *Handler) CreatePurchase(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, ok := purchaseInputFromRequest(c, req)
	if !ok {
		return
	}

	purchase, err := h.PurchaseService.Create(uid, input)
	if err != nil {
		respondServiceError(c, err, "purchase create failed")
		return
	}
	requestLog(c).Infow("purchase_created",
		"purchase_id", purchase.ID,
		"store_name", purchase.StoreName,
		"order_id", purchase.OrderID,
	)
	response.Success(c, purchase)
}

// UpdatePurchase 更新购买记录
func (h *Handler) UpdatePurchase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, ok := purchaseInputFromRequest(c, req)
	if !ok {
		return
	}

	purchase, err := h.PurchaseService.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "purchase update failed")
		return
	}
	response.Success(c, purchase)
}

// DeletePurchase 删除购买记录
func (h *Handler) DeletePurchase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.PurchaseService.Delete(id); err != nil {
		respondServiceError(c, err, "purchase delete failed")
		return
	}
	requestLog(c).Infow("purchase_deleted", "purchase_id", id)
	response.Success(c, gin.H{"deleted": true})
}

func purchaseInputFromRequest(c *gin.Context, req PurchaseRequest) (service.PurchaseInput, bool) {
	orderDate, ok := parseDateParam(req.OrderDate)
	if !ok || orderDate == nil {
		respondError(c, response.CodeBadRequest, "order date invalid", nil)
		return service.PurchaseInput{}, false
	}
	return service.PurchaseInput{
		StoreName:       req.StoreName,
		OrderID:         req.OrderID,
		OrderDate:       *orderDate,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		EmailUsed:       req.EmailUsed,
		PhoneNumber:     req.PhoneNumber,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}, true
}
