package portalbus

import (
	"context"
	"strings"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              宿主 → 模块（发布者）
// ════════════════════════════════════════════════════════════════════════════

// PublishLogout 发布登出并执行完整的会话重置
//
// 登出事件不是有状态的：晚加入的模块不会收到过期的登出信号。
// 监听器返回后清除全部有状态条目，再执行重置钩子。
func (p *Portal) PublishLogout(ctx context.Context) error {
	if err := p.checkRunning(); err != nil {
		return err
	}
	return p.coordinator.Logout(ctx)
}

// PublishLocale 发布语言切换
func (p *Portal) PublishLocale(locale string) error {
	if err := p.checkRunning(); err != nil {
		return err
	}
	Publish(p.bridge, &types.LocaleChangeEvent{Locale: locale})
	logger.Debug("已发布语言切换", "locale", locale)
	return nil
}

// PublishTokenRefreshed 发布令牌刷新，会话进入已认证阶段
func (p *Portal) PublishTokenRefreshed(ctx context.Context, token string, user types.UserClaims) error {
	if err := p.checkRunning(); err != nil {
		return err
	}
	return p.coordinator.TokenRefreshed(ctx, &types.TokenRefreshedEvent{
		Token: token,
		User:  user,
	})
}

// PublishReady 发布宿主就绪，模块此后可以发送页面元数据
func (p *Portal) PublishReady() error {
	if err := p.checkRunning(); err != nil {
		return err
	}
	Publish(p.bridge, &types.ReadyEvent{})
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              模块 → 宿主（监听器）
// ════════════════════════════════════════════════════════════════════════════

// OnNavigate 监听导航请求
func (p *Portal) OnNavigate(fn func(*types.NavigateEvent)) pkgif.Subscription {
	return Subscribe(p.bridge, fn)
}

// OnError 监听模块错误上报
func (p *Portal) OnError(fn func(*types.ErrorEvent)) pkgif.Subscription {
	return Subscribe(p.bridge, fn)
}

// OnNotification 监听通知
func (p *Portal) OnNotification(fn func(*types.NotificationEvent)) pkgif.Subscription {
	return Subscribe(p.bridge, fn)
}

// OnLog 监听模块日志
func (p *Portal) OnLog(fn func(*types.LogEvent)) pkgif.Subscription {
	return Subscribe(p.bridge, fn)
}

// OnNavigationClear 监听导航菜单清除
func (p *Portal) OnNavigationClear(fn func()) pkgif.Subscription {
	return Subscribe(p.bridge, func(*types.ClearNavigationEvent) { fn() })
}

// OnPageTitle 监听页面标题（有状态）
//
// 宿主晚于模块挂载标题栏时，立即收到最近一次设置的标题。
// 降级模式下退化为普通订阅。
func (p *Portal) OnPageTitle(fn func(*types.PageTitleEvent)) pkgif.Subscription {
	if sb, ok := p.bridge.Stateful(); ok {
		return SubscribeStateful(sb, fn)
	}
	return Subscribe(p.bridge, fn)
}

// OnNavigationRegister 监听导航菜单注册（有状态）
func (p *Portal) OnNavigationRegister(fn func(*types.PageNavigationEvent)) pkgif.Subscription {
	if sb, ok := p.bridge.Stateful(); ok {
		return SubscribeStateful(sb, fn)
	}
	return Subscribe(p.bridge, fn)
}

// ════════════════════════════════════════════════════════════════════════════
//                              通配过滤
// ════════════════════════════════════════════════════════════════════════════

// OnAllPortalEvents 监听全部 portal: 事件
func (p *Portal) OnAllPortalEvents(fn pkgif.WildcardListener) pkgif.Subscription {
	return p.onPrefix(types.PortalPrefix, fn)
}

// OnAllModuleEvents 监听全部 wc: 事件
func (p *Portal) OnAllModuleEvents(fn pkgif.WildcardListener) pkgif.Subscription {
	return p.onPrefix(types.ModulePrefix, fn)
}

func (p *Portal) onPrefix(prefix string, fn pkgif.WildcardListener) pkgif.Subscription {
	return p.bridge.OnAny(func(name types.EventName, payload any) {
		if strings.HasPrefix(string(name), prefix) {
			fn(name, payload)
		}
	})
}
