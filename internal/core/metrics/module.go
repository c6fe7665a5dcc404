package metrics

import (
	"go.uber.org/fx"

	"github.com/aetherweave/go-portalbus/config"
	"github.com/aetherweave/go-portalbus/internal/core/statestore"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace 指标命名空间
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: DefaultNamespace,
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Metrics 输出
//
// 未启用时 Reporter 为 nil，Observer 为 nil 接口。
// Bus.ObserveEmits 关闭时只保留 Reporter（状态仪表），不挂到 Emitter Core。
type Result struct {
	fx.Out

	Reporter *Reporter
	Observer pkgif.BusObserver
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewReporterFromParams),
	fx.Invoke(trackState),
)

// NewReporterFromParams 从参数创建 Reporter
func NewReporterFromParams(p Params) Result {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		return Result{}
	}
	r := NewReporter(cfg.Namespace)
	if p.UnifiedCfg != nil && !p.UnifiedCfg.Bus.ObserveEmits {
		return Result{Reporter: r}
	}
	return Result{Reporter: r, Observer: r}
}

type trackParams struct {
	fx.In

	Reporter   *Reporter
	Store      *statestore.Store `optional:"true"`
	UnifiedCfg *config.Config    `optional:"true"`
}

func trackState(p trackParams) error {
	if p.Reporter == nil || p.Store == nil {
		return nil
	}
	return p.Reporter.TrackState(ConfigFromUnified(p.UnifiedCfg).Namespace, p.Store.Len)
}
