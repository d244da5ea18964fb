package console

import "github.com/parceldesk/internal/provider"

// Handler 控制台接口处理器入口
// 说明：控制台所有路由均要求 JWT 登录。
type Handler struct {
	*provider.Container
}

// New 创建控制台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
