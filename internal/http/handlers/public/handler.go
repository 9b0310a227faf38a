package public

import "github.com/ordering-next/internal/provider"

// Handler 店面侧 API 处理器入口
// 说明：该处理器仅服务顾客侧店面，管理端不在本服务内。
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
