package console

import (
	"github.com/parceldesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// TrackRequest 注册运单追踪请求
type TrackRequest struct {
	ShipmentID uint `json:"shipment_id" binding:"required"`
}

// RegisterTracker 手动向承运商注册运单追踪
func (h *Handler) RegisterTracker(c *gin.Context) {
	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.ShipmentService.RegisterTracker(c.Request.Context(), req.ShipmentID); err != nil {
		respondServiceError(c, err, "tracker register failed")
		return
	}
	requestLog(c).Infow("tracker_register_requested", "shipment_id", req.ShipmentID)
	response.Success(c, gin.H{"registered": true})
}
