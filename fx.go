package portalbus

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/aetherweave/go-portalbus/config"
	"github.com/aetherweave/go-portalbus/internal/core/bridge"
	"github.com/aetherweave/go-portalbus/internal/core/eventbus"
	"github.com/aetherweave/go-portalbus/internal/core/lifecycle"
	"github.com/aetherweave/go-portalbus/internal/core/logsink"
	"github.com/aetherweave/go-portalbus/internal/core/metrics"
	"github.com/aetherweave/go-portalbus/internal/core/stateful"
	"github.com/aetherweave/go-portalbus/internal/core/statestore"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 模块加载顺序：
//  1. Emitter Core
//  2. 有状态扩展（Store + Stateful Bus，可关闭）
//  3. 指标
//  4. 全局访问点
//  5. 会话生命周期
//  6. 模块日志接收
func buildFxApp(cfg *config.Config, opts *options, p *Portal) *fx.App {
	modules := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(registryProvider(cfg, opts)),
	}

	if opts.clock != nil {
		c := opts.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return c }))
	}

	// ════════════════════════════════════════════════════════════════════
	// Emitter Core
	// ════════════════════════════════════════════════════════════════════
	modules = append(modules, eventbus.Module())

	// ════════════════════════════════════════════════════════════════════
	// 有状态扩展
	// ════════════════════════════════════════════════════════════════════
	if cfg.State.Enabled {
		modules = append(modules,
			statestore.Module(),
			stateful.Module(),
		)
	}

	// ════════════════════════════════════════════════════════════════════
	// 指标（未启用时提供 nil Reporter）
	// ════════════════════════════════════════════════════════════════════
	modules = append(modules, metrics.Module)

	// ════════════════════════════════════════════════════════════════════
	// 全局访问点、会话生命周期、日志接收
	// ════════════════════════════════════════════════════════════════════
	modules = append(modules,
		bridge.Module(),
		lifecycle.Module(),
		logsink.Module(),
	)

	// 用户自定义 Fx 选项
	modules = append(modules, opts.userFxOptions...)

	modules = append(modules,
		fx.Invoke(injectPortalComponents(p)),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: fxLogger(cfg)}
		}),
	)

	return fx.New(modules...)
}

// registryProvider 选择发布总线的注册表
//
// 优先级：WithRegistry > Bridge.Isolated > 进程级注册表
func registryProvider(cfg *config.Config, opts *options) func() *bridge.Registry {
	return func() *bridge.Registry {
		switch {
		case opts.registry != nil:
			return opts.registry
		case cfg.Bridge.Isolated:
			return bridge.NewRegistry()
		default:
			return bridge.Default()
		}
	}
}

// fxLogger 返回 fx 事件日志使用的 zap logger
func fxLogger(cfg *config.Config) *zap.Logger {
	if cfg.Log.FxEvents {
		if l, err := zap.NewDevelopment(); err == nil {
			return l
		}
	}
	return zap.NewNop()
}

// portalComponents 注入到 Portal 的组件
type portalComponents struct {
	fx.In

	Bus         *eventbus.Bus
	Bridge      pkgif.Bridge
	Registry    *bridge.Registry
	Coordinator *lifecycle.Coordinator
	Store       *statestore.Store `optional:"true"`
	Reporter    *metrics.Reporter `optional:"true"`
	Sink        *logsink.Sink     `optional:"true"`
}

// injectPortalComponents 把组件注入到 Portal
func injectPortalComponents(p *Portal) func(portalComponents) {
	return func(c portalComponents) {
		p.bus = c.Bus
		p.bridge = c.Bridge
		p.registry = c.Registry
		p.coordinator = c.Coordinator
		p.store = c.Store
		p.reporter = c.Reporter
		p.sink = c.Sink
	}
}
