package console

import (
	"github.com/parceldesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats 获取仪表盘统计
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.DashboardService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard stats failed", err)
		return
	}
	response.Success(c, stats)
}
