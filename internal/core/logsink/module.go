package logsink

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/aetherweave/go-portalbus/config"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
)

// ConfigFromUnified 从统一配置创建接收配置
func ConfigFromUnified(cfg *config.Config) (Config, bool) {
	if cfg == nil {
		return DefaultConfig(), true
	}
	c := DefaultConfig()
	c.RatePerSecond = cfg.LogSink.RatePerSecond
	c.Burst = cfg.LogSink.Burst
	if cfg.LogSink.Capacity > 0 {
		c.Capacity = cfg.LogSink.Capacity
	}
	return c, cfg.LogSink.Enabled
}

// Params 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// Module 返回 Fx 模块
//
// 未启用时提供 nil *Sink。
func Module() fx.Option {
	return fx.Module("logsink",
		fx.Provide(ProvideSink),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideSink 提供 Sink 实例
func ProvideSink(p Params) *Sink {
	cfg, enabled := ConfigFromUnified(p.UnifiedCfg)
	if !enabled {
		return nil
	}
	return New(cfg, WithClock(p.Clock))
}

type lifecycleInput struct {
	fx.In

	LC     fx.Lifecycle
	Sink   *Sink
	Bridge pkgif.Bridge
}

func registerLifecycle(in lifecycleInput) {
	if in.Sink == nil {
		return
	}
	in.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			in.Sink.Attach(in.Bridge)
			logger.Debug("模块日志接收已启动")
			return nil
		},
		OnStop: func(_ context.Context) error {
			in.Sink.Detach()
			return nil
		},
	})
}
