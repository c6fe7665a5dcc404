package bridge

import (
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
)

// Handle 全局总线句柄
//
// 嵌入 Emitter Core 的全部操作，额外携带可选的有状态总线。
type Handle struct {
	pkgif.Emitter

	stateful pkgif.StatefulBus
}

var _ pkgif.Bridge = (*Handle)(nil)

// NewHandle 创建句柄
//
// stateful 为 nil 表示宿主以降级模式运行（没有有状态扩展）。
func NewHandle(emitter pkgif.Emitter, stateful pkgif.StatefulBus) *Handle {
	return &Handle{Emitter: emitter, stateful: stateful}
}

// Stateful 返回有状态总线
func (h *Handle) Stateful() (pkgif.StatefulBus, bool) {
	return h.stateful, h.stateful != nil
}
