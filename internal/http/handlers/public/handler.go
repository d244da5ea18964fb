package public

import "github.com/parceldesk/internal/provider"

// Handler 公开接口处理器入口
// 说明：仅承载无需登录即可访问的 API（入站 webhook、登录）。
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
