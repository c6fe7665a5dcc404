package bridge

import "errors"

var (
	// ErrBusNotFound 全局事件总线尚未由宿主创建
	ErrBusNotFound = errors.New("portal event bus not found")

	// ErrStatefulUnavailable 宿主未启用有状态扩展
	ErrStatefulUnavailable = errors.New("stateful event bus unavailable")
)
