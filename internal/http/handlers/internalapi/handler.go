package internalapi

import "github.com/slideboard-next/internal/provider"

// Handler 内部集成接口处理器（供订单流程同步回调）
type Handler struct {
	*provider.Container
}

// New 创建内部接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
