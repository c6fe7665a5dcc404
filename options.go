package portalbus

import (
	"errors"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/aetherweave/go-portalbus/config"
	"github.com/aetherweave/go-portalbus/internal/core/bridge"
)

// Registry 全局访问点注册表
//
// 宿主发布总线，模块查找总线。进程内默认使用 DefaultRegistry()。
type Registry = bridge.Registry

// NewRegistry 创建独立注册表
//
// 用于测试，或在同一进程内隔离多个宿主。
func NewRegistry() *Registry {
	return bridge.NewRegistry()
}

// DefaultRegistry 返回进程级注册表
func DefaultRegistry() *Registry {
	return bridge.Default()
}

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 统一配置（nil 表示默认）
	config *config.Config

	// 预设名称
	preset string

	// 覆盖项（nil 表示沿用配置）
	stateful *bool
	metrics  *bool
	logSink  *bool

	registry *Registry
	clock    clock.Clock

	// 用户自定义 Fx 选项
	userFxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{}
}

// toConfig 合并为最终配置
func (o *options) toConfig() (*config.Config, error) {
	cfg := config.CloneConfig(o.config)
	if cfg == nil {
		cfg = config.NewConfig()
	}

	if err := config.ApplyPreset(cfg, o.preset); err != nil {
		return nil, err
	}

	if o.stateful != nil {
		cfg.State.Enabled = *o.stateful
	}
	if o.metrics != nil {
		cfg.Metrics.Enabled = *o.metrics
	}
	if o.logSink != nil {
		cfg.LogSink.Enabled = *o.logSink
	}

	if err := config.ValidateAll(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithConfig 使用统一配置
//
// 配置会被复制，之后修改 cfg 不影响门户。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		o.config = cfg
		return nil
	}
}

// WithPreset 应用预设（full/degraded/minimal/debug）
func WithPreset(name string) Option {
	return func(o *options) error {
		o.preset = name
		return nil
	}
}

// WithStateful 启用或关闭有状态扩展
//
// 关闭时模块客户端以降级模式运行。
func WithStateful(enabled bool) Option {
	return func(o *options) error {
		o.stateful = &enabled
		return nil
	}
}

// WithMetrics 启用或关闭 prometheus 指标
func WithMetrics(enabled bool) Option {
	return func(o *options) error {
		o.metrics = &enabled
		return nil
	}
}

// WithLogSink 启用或关闭模块日志接收
func WithLogSink(enabled bool) Option {
	return func(o *options) error {
		o.logSink = &enabled
		return nil
	}
}

// WithRegistry 使用指定的注册表发布总线
func WithRegistry(r *Registry) Option {
	return func(o *options) error {
		if r == nil {
			return errors.New("registry is nil")
		}
		o.registry = r
		return nil
	}
}

// WithClock 设置状态时间戳与日志记录使用的时钟
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		o.clock = c
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
//
// 可以注入额外的组件，或通过 fx.Invoke 访问内部组件。
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
