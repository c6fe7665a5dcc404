package portalbus

import (
	"errors"

	"github.com/aetherweave/go-portalbus/config"
	"github.com/aetherweave/go-portalbus/internal/core/bridge"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 门户生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted 门户未启动
	ErrNotStarted = errors.New("portal not started")

	// ErrAlreadyStarted 门户已启动
	ErrAlreadyStarted = errors.New("portal already started")

	// ErrPortalClosed 门户已关闭
	ErrPortalClosed = errors.New("portal closed")

	// ────────────────────────────────────────────────────────────────────────
	// 总线相关错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrBusNotFound 全局事件总线尚未创建
	ErrBusNotFound = bridge.ErrBusNotFound

	// ErrStatefulUnavailable 宿主未启用有状态扩展
	ErrStatefulUnavailable = bridge.ErrStatefulUnavailable

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = config.ErrInvalidConfig
)
