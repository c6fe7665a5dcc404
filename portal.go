package portalbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/aetherweave/go-portalbus/config"
	"github.com/aetherweave/go-portalbus/internal/core/bridge"
	"github.com/aetherweave/go-portalbus/internal/core/eventbus"
	"github.com/aetherweave/go-portalbus/internal/core/lifecycle"
	"github.com/aetherweave/go-portalbus/internal/core/logsink"
	"github.com/aetherweave/go-portalbus/internal/core/metrics"
	"github.com/aetherweave/go-portalbus/internal/core/statestore"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/lib/log"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

var logger = log.Logger("portalbus")

// LogRecord 模块日志接收器保留的一条记录
type LogRecord = logsink.Record

// Portal 门户宿主
//
// Portal 是宿主侧的入口：创建事件总线并发布到全局访问点，
// 提供宿主发布者与监听器，协调登出时的完整重置。
type Portal struct {
	cfg *config.Config
	app *fx.App

	mu      sync.RWMutex
	state   PortalState
	closed  bool
	stopErr error

	// 由 Fx 注入
	bus         *eventbus.Bus
	bridge      pkgif.Bridge
	registry    *bridge.Registry
	coordinator *lifecycle.Coordinator
	store       *statestore.Store
	reporter    *metrics.Reporter
	sink        *logsink.Sink
}

// New 创建门户（不启动）
//
// 构造期间总线即被发布到注册表，之后加载的模块可以立即找到它。
func New(opts ...Option) (*Portal, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	cfg, err := o.toConfig()
	if err != nil {
		return nil, err
	}

	p := &Portal{
		cfg:   cfg,
		state: StateIdle,
	}

	app := buildFxApp(cfg, o, p)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build portal: %w", err)
	}
	p.app = app

	logger.Debug("门户已创建",
		"stateful", cfg.State.Enabled,
		"metrics", cfg.Metrics.Enabled,
		"logSink", cfg.LogSink.Enabled)
	return p, nil
}

// Start 创建并启动门户
func Start(ctx context.Context, opts ...Option) (*Portal, error) {
	p, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Start(ctx); err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              访问器
// ════════════════════════════════════════════════════════════════════════════

// Bus 返回全局访问点句柄
//
// 注册表中已有其他宿主发布的总线时，返回的是那条总线。
func (p *Portal) Bus() pkgif.Bridge {
	return p.bridge
}

// Registry 返回发布总线的注册表
func (p *Portal) Registry() *Registry {
	return p.registry
}

// Stateful 返回有状态总线，降级模式下返回 false
func (p *Portal) Stateful() (pkgif.StatefulBus, bool) {
	return p.bridge.Stateful()
}

// Lifecycle 返回会话生命周期协调器
func (p *Portal) Lifecycle() *lifecycle.Coordinator {
	return p.coordinator
}

// Config 返回门户配置的副本
func (p *Portal) Config() *config.Config {
	return config.CloneConfig(p.cfg)
}

// Metrics 返回 prometheus 注册表，未启用指标时返回 nil
func (p *Portal) Metrics() *prometheus.Registry {
	if p.reporter == nil {
		return nil
	}
	return p.reporter.Registry()
}

// Stats 返回指定事件的发射统计
func (p *Portal) Stats(name types.EventName) metrics.Stats {
	if p.reporter == nil {
		return metrics.Stats{}
	}
	return p.reporter.Stats(name)
}

// RecentLogs 返回最近接收的模块日志，未启用日志接收时返回 nil
func (p *Portal) RecentLogs() []LogRecord {
	if p.sink == nil {
		return nil
	}
	return p.sink.Recent()
}

// ListenerCount 返回具名监听器数量
func (p *Portal) ListenerCount(name types.EventName) int {
	return p.bridge.ListenerCount(name)
}

// RemoveAllListeners 移除监听器；不带参数时移除全部
func (p *Portal) RemoveAllListeners(names ...types.EventName) {
	p.bridge.RemoveAllListeners(names...)
}
