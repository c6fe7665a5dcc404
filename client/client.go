package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aetherweave/go-portalbus/internal/core/bridge"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/lib/log"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

var logger = log.Logger("client")

var (
	// ErrBusNotFound 宿主尚未创建全局事件总线
	ErrBusNotFound = bridge.ErrBusNotFound

	// ErrSourceRequired 未设置模块标识
	ErrSourceRequired = errors.New("client source is required")
)

// ============================================================================
//                              Mode
// ============================================================================

// Mode 有状态操作的执行模式
type Mode int

const (
	// ModeStateful 有状态扩展可用
	ModeStateful Mode = iota + 1
	// ModeDegraded 有状态扩展不可用，退化为普通发射/订阅
	ModeDegraded
)

// String 返回模式字符串
func (m Mode) String() string {
	switch m {
	case ModeStateful:
		return "stateful"
	case ModeDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ============================================================================
//                              Client
// ============================================================================

// Client 模块侧事件总线客户端
type Client struct {
	bridge pkgif.Bridge
	source string
	debug  bool

	mu     sync.RWMutex
	locale string
}

// New 连接到宿主创建的总线
//
// 总线尚不存在时立即返回包装了 ErrBusNotFound 的错误，不做重试。
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Source == "" {
		return nil, ErrSourceRequired
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	br := o.bridge
	if br == nil {
		reg := o.registry
		if reg == nil {
			reg = bridge.Default()
		}
		found, err := reg.Lookup()
		if err != nil {
			logger.Error("连接事件总线失败", "source", cfg.Source, "error", err)
			return nil, fmt.Errorf("client %s: %w", cfg.Source, err)
		}
		br = found
	}

	locale := cfg.Locale
	if locale == "" {
		locale = DefaultLocale
	}

	c := &Client{
		bridge: br,
		source: cfg.Source,
		debug:  cfg.Debug,
		locale: locale,
	}
	c.log("Connected to portal event bus", types.LogLevelDebug, nil)
	return c, nil
}

// Source 返回模块标识
func (c *Client) Source() string {
	return c.source
}

// Locale 返回当前语言
func (c *Client) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// Capability 报告有状态操作的执行模式
func (c *Client) Capability() Mode {
	if _, ok := c.bridge.Stateful(); ok {
		return ModeStateful
	}
	return ModeDegraded
}

// Bus 返回底层句柄
func (c *Client) Bus() pkgif.Bridge {
	return c.bridge
}

// ============================================================================
//                              监听器（宿主 → 模块）
// ============================================================================

// OnLogout 监听登出，模块应清除本地状态
func (c *Client) OnLogout(fn func()) pkgif.Subscription {
	return c.bridge.On(types.EventAuthLogout, func(any) {
		c.log("Logout event received", types.LogLevelInfo, nil)
		fn()
	})
}

// OnTokenRefresh 监听令牌刷新
func (c *Client) OnTokenRefresh(fn func(*types.TokenRefreshedEvent)) pkgif.Subscription {
	return on(c, func(e *types.TokenRefreshedEvent) {
		c.log("Token refresh event received", types.LogLevelInfo, nil)
		fn(e)
	})
}

// OnLocaleChange 监听语言切换，并更新 Locale()
func (c *Client) OnLocaleChange(fn func(*types.LocaleChangeEvent)) pkgif.Subscription {
	return on(c, func(e *types.LocaleChangeEvent) {
		c.mu.Lock()
		c.locale = e.Locale
		c.mu.Unlock()

		c.log("Locale changed to: "+e.Locale, types.LogLevelDebug, nil)
		fn(e)
	})
}

// OnPortalReady 监听宿主就绪
func (c *Client) OnPortalReady(fn func()) pkgif.Subscription {
	return c.bridge.On(types.EventPortalReady, func(any) {
		c.log("Portal ready signal received", types.LogLevelDebug, nil)
		fn()
	})
}

func on[E any, PE types.Payload[E]](c *Client, fn func(PE)) pkgif.Subscription {
	name := types.NameOf[E, PE]()
	return c.bridge.On(name, func(raw any) {
		v, ok := types.As[E, PE](raw)
		if !ok {
			logger.Warn("负载类型不符，跳过", "source", c.source, "event", name, "type", fmt.Sprintf("%T", raw))
			return
		}
		fn(v)
	})
}

// ============================================================================
//                              发射（模块 → 宿主）
// ============================================================================

// Navigate 请求导航，由宿主执行路由
func (c *Client) Navigate(path string, replace bool) {
	c.bridge.Emit(types.EventNavigate, &types.NavigateEvent{Path: path, Replace: replace})
	c.log("Navigation requested: "+path, types.LogLevelDebug, nil)
}

// EmitError 上报错误，source 为空时使用模块标识
func (c *Client) EmitError(message, code, source string) {
	if source == "" {
		source = c.source
	}
	c.bridge.Emit(types.EventError, &types.ErrorEvent{Message: message, Code: code, Source: source})

	var meta any
	if code != "" {
		meta = map[string]string{"code": code}
	}
	c.log("Error emitted: "+message, types.LogLevelError, meta)
}

// EmitNotification 发送通知，类型为空时使用 info
func (c *Client) EmitNotification(message string, typ types.NotificationType) {
	if typ == "" {
		typ = types.NotificationInfo
	}
	c.bridge.Emit(types.EventNotification, &types.NotificationEvent{Message: message, Type: typ})
	c.log(fmt.Sprintf("Notification (%s): %s", typ, message), types.LogLevelDebug, nil)
}

// EmitLog 上报日志
func (c *Client) EmitLog(message string, level types.LogLevel, meta any) {
	c.bridge.Emit(types.EventLog, &types.LogEvent{
		Message: message,
		Level:   level,
		Source:  c.source,
		Meta:    meta,
	})
}

// SetPageTitle 设置页面标题（有状态）
//
// 翻译需在调用前加载完成，宿主晚于模块挂载时收到的是这里的值。
func (c *Client) SetPageTitle(title, subtitle string) Mode {
	mode := c.emitStateful(types.EventPageTitleSet, &types.PageTitleEvent{Title: title, Subtitle: subtitle})
	c.log("Page title set: "+title, types.LogLevelDebug, nil)
	return mode
}

// RegisterNavigation 注册导航菜单（有状态）
func (c *Client) RegisterNavigation(items []types.NavigationItem, baseRoute string) Mode {
	payload := &types.PageNavigationEvent{Items: items, BaseRoute: baseRoute}
	mode := c.emitStateful(types.EventPageNavigationRegister, payload)
	c.log("Navigation registered for "+baseRoute, types.LogLevelDebug, payload)
	return mode
}

// ClearNavigation 清除导航菜单
//
// 同时清除已保存的导航注册，之后挂载的宿主不会再收到旧菜单。
func (c *Client) ClearNavigation() {
	if sb, ok := c.bridge.Stateful(); ok {
		sb.ClearState(types.EventPageNavigationRegister)
	}
	c.bridge.Emit(types.EventPageNavigationClear, &types.ClearNavigationEvent{})
	c.log("Navigation cleared", types.LogLevelDebug, nil)
}

// ============================================================================
//                              有状态事件
// ============================================================================

// EmitStateful 有状态发射自定义事件，晚加入者会收到回放
func (c *Client) EmitStateful(name types.EventName, payload any) Mode {
	mode := c.emitStateful(name, payload)
	if mode == ModeStateful {
		c.log("Stateful event emitted: "+name.String(), types.LogLevelDebug, nil)
	}
	return mode
}

func (c *Client) emitStateful(name types.EventName, payload any) Mode {
	if sb, ok := c.bridge.Stateful(); ok {
		sb.EmitStateful(name, payload)
		return ModeStateful
	}
	logger.Warn("有状态总线不可用，退化为普通发射", "source", c.source, "event", name)
	c.bridge.Emit(name, payload)
	return ModeDegraded
}

// OnStateful 有状态订阅；已有状态时立即同步回放
func (c *Client) OnStateful(name types.EventName, l pkgif.Listener) (pkgif.Subscription, Mode) {
	if sb, ok := c.bridge.Stateful(); ok {
		return sb.OnStateful(name, l), ModeStateful
	}
	logger.Warn("有状态总线不可用，退化为普通订阅", "source", c.source, "event", name)
	return c.bridge.On(name, l), ModeDegraded
}

// GetState 返回当前状态（不订阅）；降级模式下总是 (nil, false)
func (c *Client) GetState(name types.EventName) (any, bool) {
	if sb, ok := c.bridge.Stateful(); ok {
		return sb.GetState(name)
	}
	return nil, false
}

// ClearState 清除状态；不带参数时清除全部。降级模式下为空操作
func (c *Client) ClearState(names ...types.EventName) Mode {
	sb, ok := c.bridge.Stateful()
	if !ok {
		return ModeDegraded
	}
	sb.ClearState(names...)
	if len(names) == 0 {
		c.log("All state cleared", types.LogLevelDebug, nil)
	} else {
		c.log(fmt.Sprintf("State cleared: %v", names), types.LogLevelDebug, nil)
	}
	return ModeStateful
}

// ============================================================================
//                              日志
// ============================================================================

// log 上报 wc:log；Debug 开启时同时写本地日志
func (c *Client) log(message string, level types.LogLevel, meta any) {
	c.EmitLog(message, level, meta)

	if !c.debug {
		return
	}
	lvl, _ := log.ParseLevel(string(level))
	args := []any{"source", c.source}
	if meta != nil {
		args = append(args, "meta", meta)
	}
	logger.Log(context.Background(), lvl, message, args...)
}
