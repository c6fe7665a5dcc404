package types

// ============================================================================
//                              宿主 → 模块负载
// ============================================================================

// LogoutEvent 登出事件（无字段）
type LogoutEvent struct{}

// EventName 实现 Event 接口
func (*LogoutEvent) EventName() EventName { return EventAuthLogout }

// UserClaims 用户声明
//
// 已知字段之外的声明保存在 Extra 中。
type UserClaims struct {
	Username          string         `json:"username,omitempty" yaml:"username,omitempty"`
	Email             string         `json:"email,omitempty" yaml:"email,omitempty"`
	Name              string         `json:"name,omitempty" yaml:"name,omitempty"`
	PreferredUsername string         `json:"preferred_username,omitempty" yaml:"preferred_username,omitempty"`
	Roles             []string       `json:"roles,omitempty" yaml:"roles,omitempty"`
	Extra             map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// HasRole 检查是否具有指定角色
func (c UserClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenRefreshedEvent 令牌刷新事件
type TokenRefreshedEvent struct {
	Token string     `json:"token"`
	User  UserClaims `json:"user"`
}

// EventName 实现 Event 接口
func (*TokenRefreshedEvent) EventName() EventName { return EventAuthTokenRefreshed }

// LocaleChangeEvent 语言切换事件
type LocaleChangeEvent struct {
	Locale string `json:"locale"`
}

// EventName 实现 Event 接口
func (*LocaleChangeEvent) EventName() EventName { return EventLocaleChange }

// ReadyEvent 宿主就绪事件
type ReadyEvent struct{}

// EventName 实现 Event 接口
func (*ReadyEvent) EventName() EventName { return EventPortalReady }

// ============================================================================
//                              模块 → 宿主负载
// ============================================================================

// NavigateEvent 导航请求
type NavigateEvent struct {
	Path    string `json:"path"`
	Replace bool   `json:"replace,omitempty"`
}

// EventName 实现 Event 接口
func (*NavigateEvent) EventName() EventName { return EventNavigate }

// ErrorEvent 错误上报
type ErrorEvent struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Source  string `json:"source,omitempty"`
}

// EventName 实现 Event 接口
func (*ErrorEvent) EventName() EventName { return EventError }

// NotificationType 通知类型
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Valid 检查通知类型是否合法
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationSuccess, NotificationInfo, NotificationWarning, NotificationError:
		return true
	}
	return false
}

// NotificationEvent 通知
type NotificationEvent struct {
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

// EventName 实现 Event 接口
func (*NotificationEvent) EventName() EventName { return EventNotification }

// LogLevel 模块日志级别
type LogLevel string

const (
	LogLevelError LogLevel = "error"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

// LogEvent 模块日志
type LogEvent struct {
	Message string   `json:"message"`
	Level   LogLevel `json:"level"`
	Source  string   `json:"source"`
	Meta    any      `json:"meta,omitempty"`
}

// EventName 实现 Event 接口
func (*LogEvent) EventName() EventName { return EventLog }

// PageTitleEvent 页面标题
type PageTitleEvent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// EventName 实现 Event 接口
func (*PageTitleEvent) EventName() EventName { return EventPageTitleSet }

// NavigationSubItem 下拉菜单项
type NavigationSubItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavigationItem 导航项
//
// 直接链接只设置 Path；下拉菜单设置 Children。
type NavigationItem struct {
	Label    string              `json:"label"`
	Path     string              `json:"path,omitempty"`
	Active   bool                `json:"active,omitempty"`
	Children []NavigationSubItem `json:"children,omitempty"`
}

// IsDropdown 是否为下拉菜单
func (i NavigationItem) IsDropdown() bool {
	return len(i.Children) > 0
}

// PageNavigationEvent 导航菜单注册
type PageNavigationEvent struct {
	Items     []NavigationItem `json:"items"`
	BaseRoute string           `json:"baseRoute"`
}

// EventName 实现 Event 接口
func (*PageNavigationEvent) EventName() EventName { return EventPageNavigationRegister }

// ClearNavigationEvent 清除导航菜单（无字段）
type ClearNavigationEvent struct{}

// EventName 实现 Event 接口
func (*ClearNavigationEvent) EventName() EventName { return EventPageNavigationClear }
