package console

import (
	handlershared "github.com/parceldesk/internal/http/handlers/shared"
	"github.com/parceldesk/internal/http/response"
	"github.com/parceldesk/internal/service"

	"github.com/gin-gonic/gin"
)

// ShipmentRequest 创建/更新包裹请求
type ShipmentRequest struct {
	PurchaseID     uint   `json:"purchase_id"`
	TrackingNumber string `json:"tracking_number"`
	Courier        string `json:"courier"`
}

// ShipmentStatusRequest 手动改写包裹状态请求
type ShipmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ShipmentListQuery 包裹列表查询参数
type ShipmentListQuery struct {
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
	PurchaseID     uint   `form:"purchase_id"`
	Status         string `form:"status"`
	Courier        string `form:"courier"`
	TrackingNumber string `form:"tracking_number"`
}

// ListShipments 获取包裹列表
func (h *Handler) ListShipments(c *gin.Context) {
	var query ShipmentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	shipments, total, err := h.ShipmentService.List(query.PurchaseID, query.Status, query.Courier, query.TrackingNumber, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "shipment list failed", err)
		return
	}
	response.SuccessWithPage(c, shipments, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.TotalPages(total, pageSize),
	})
}

// GetShipment 获取包裹详情（含轨迹）
func (h *Handler) GetShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	shipment, err := h.ShipmentService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "shipment fetch failed")
		return
	}
	response.Success(c, shipment)
}

// CreateShipment 创建包裹
func (h *Handler) CreateShipment(c *gin.Context) {
	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if req.PurchaseID == 0 {
		respondError(c, response.CodeBadRequest, "purchase_id required", nil)
		return
	}

	shipment, err := h.ShipmentService.Create(service.ShipmentInput{
		PurchaseID:     req.PurchaseID,
		TrackingNumber: req.TrackingNumber,
		Courier:        req.Courier,
	})
	if err != nil {
		respondServiceError(c, err, "shipment create failed")
		return
	}
	requestLog(c).Infow("shipment_created",
		"shipment_id", shipment.ID,
		"purchase_id", shipment.PurchaseID,
		"tracking_number", shipment.TrackingNumber,
	)
	response.Success(c, shipment)
}

// UpdateShipment 更新包裹运单信息
func (h *Handler) UpdateShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	shipment, err := h.ShipmentService.Update(id, service.ShipmentInput{
		TrackingNumber: req.TrackingNumber,
		Courier:        req.Courier,
	})
	if err != nil {
		respondServiceError(c, err, "shipment update failed")
		return
	}
	response.Success(c, shipment)
}

// UpdateShipmentStatus 手动改写包裹状态
func (h *Handler) UpdateShipmentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	shipment, err := h.ShipmentService.UpdateStatusManual(id, req.Status)
	if err != nil {
		respondServiceError(c, err, "shipment status update failed")
		return
	}
	requestLog(c).Infow("shipment_status_manual_update",
		"shipment_id", shipment.ID,
		"status", shipment.Status,
	)
	response.Success(c, shipment)
}

// DeleteShipment 删除包裹
func (h *Handler) DeleteShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ShipmentService.Delete(id); err != nil {
		respondServiceError(c, err, "shipment delete failed")
		return
	}
	requestLog(c).Infow("shipment_deleted", "shipment_id", id)
	response.Success(c, gin.H{"deleted": true})
}
