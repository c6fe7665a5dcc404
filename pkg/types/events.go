package types

import (
	"sort"
	"strings"
)

// ============================================================================
//                              EventName
// ============================================================================

// EventName 事件名称
//
// 不可变字符串标识。总线对所有名称一视同仁，
// 命名空间前缀只是约定。
type EventName string

// String 返回字符串表示
func (n EventName) String() string {
	return string(n)
}

// 命名空间前缀
const (
	// PortalPrefix 宿主 → 模块事件前缀
	PortalPrefix = "portal:"
	// ModulePrefix 模块 → 宿主事件前缀
	ModulePrefix = "wc:"
)

// ============================================================================
//                              标准事件目录
// ============================================================================

// 宿主 → 模块
const (
	// EventAuthLogout 用户登出（一次性信号，不重放）
	EventAuthLogout EventName = "portal:auth:logout"
	// EventAuthTokenRefreshed 令牌已刷新
	EventAuthTokenRefreshed EventName = "portal:auth:token-refreshed"
	// EventLocaleChange 语言切换
	EventLocaleChange EventName = "portal:locale:change"
	// EventPortalReady 宿主已就绪，可以接收页面元数据
	EventPortalReady EventName = "portal:ready"
)

// 模块 → 宿主
const (
	// EventNavigate 请求导航
	EventNavigate EventName = "wc:navigate"
	// EventError 错误上报
	EventError EventName = "wc:error"
	// EventNotification 通知（toast/snackbar）
	EventNotification EventName = "wc:notification"
	// EventLog 集中日志
	EventLog EventName = "wc:log"
	// EventPageTitleSet 设置页面标题
	EventPageTitleSet EventName = "wc:page:setTitle"
	// EventPageNavigationRegister 注册导航菜单
	EventPageNavigationRegister EventName = "wc:page:registerNavigation"
	// EventPageNavigationClear 清除导航菜单
	EventPageNavigationClear EventName = "wc:page:clearNavigation"
)

// Direction 事件方向
type Direction int

const (
	// DirectionCustom 自定义事件（目录之外）
	DirectionCustom Direction = iota
	// DirectionHostToModule 宿主 → 模块
	DirectionHostToModule
	// DirectionModuleToHost 模块 → 宿主
	DirectionModuleToHost
)

// String 返回方向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirectionHostToModule:
		return "host→module"
	case DirectionModuleToHost:
		return "module→host"
	default:
		return "custom"
	}
}

// DirectionOf 按命名空间前缀判定事件方向
func DirectionOf(name EventName) Direction {
	switch {
	case strings.HasPrefix(string(name), PortalPrefix):
		return DirectionHostToModule
	case strings.HasPrefix(string(name), ModulePrefix):
		return DirectionModuleToHost
	default:
		return DirectionCustom
	}
}

// Event 标准事件负载
//
// 每个标准事件的负载类型都实现此接口，EventName 与负载类型一一对应。
// 方法必须可以在 nil 指针上调用（泛型辅助函数据此推导事件名）。
type Event interface {
	EventName() EventName
}

// catalogue 标准事件目录：名称 → 零值负载构造器
var catalogue = map[EventName]func() Event{
	EventAuthLogout:             func() Event { return &LogoutEvent{} },
	EventAuthTokenRefreshed:     func() Event { return &TokenRefreshedEvent{} },
	EventLocaleChange:           func() Event { return &LocaleChangeEvent{} },
	EventPortalReady:            func() Event { return &ReadyEvent{} },
	EventNavigate:               func() Event { return &NavigateEvent{} },
	EventError:                  func() Event { return &ErrorEvent{} },
	EventNotification:           func() Event { return &NotificationEvent{} },
	EventLog:                    func() Event { return &LogEvent{} },
	EventPageTitleSet:           func() Event { return &PageTitleEvent{} },
	EventPageNavigationRegister: func() Event { return &PageNavigationEvent{} },
	EventPageNavigationClear:    func() Event { return &ClearNavigationEvent{} },
}

// Catalogue 返回按名称排序的标准事件列表
func Catalogue() []EventName {
	names := make([]EventName, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// IsCanonical 检查名称是否属于标准事件目录
func IsCanonical(name EventName) bool {
	_, ok := catalogue[name]
	return ok
}

// NewPayload 返回标准事件的零值负载
//
// 自定义事件返回 nil, false。
func NewPayload(name EventName) (Event, bool) {
	ctor, ok := catalogue[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}
