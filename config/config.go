// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON / YAML 加载配置
//   - 支持预设配置（full/degraded/minimal/debug）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.State.Enabled = false
//
//	// 应用预设
//	config.ApplyPreset(cfg, "minimal")
//
//	// 从文件加载（按扩展名选择 JSON 或 YAML）
//	cfg, err := config.LoadFile("portalbus.yaml")
package config

import (
	"go.uber.org/multierr"
)

// Config 是 go-portalbus 的完整配置结构
//
// 配置按照功能模块组织：
//   - Bus: Emitter Core
//   - State: 有状态扩展
//   - Bridge: 全局访问点
//   - Metrics: prometheus 指标
//   - LogSink: 模块日志接收
//   - Log: 宿主日志
type Config struct {
	// Bus Emitter Core 配置
	Bus BusConfig `json:"bus" yaml:"bus"`

	// State 有状态扩展配置
	State StateConfig `json:"state" yaml:"state"`

	// Bridge 全局访问点配置
	Bridge BridgeConfig `json:"bridge" yaml:"bridge"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// LogSink 模块日志接收配置
	LogSink LogSinkConfig `json:"log_sink" yaml:"log_sink"`

	// Log 宿主日志配置
	Log LogConfig `json:"log" yaml:"log"`
}

// NewConfig 创建默认配置
//
// 默认启用有状态扩展、指标与模块日志接收，使用进程级全局访问点。
func NewConfig() *Config {
	return &Config{
		Bus:     DefaultBusConfig(),
		State:   DefaultStateConfig(),
		Bridge:  DefaultBridgeConfig(),
		Metrics: DefaultMetricsConfig(),
		LogSink: DefaultLogSinkConfig(),
		Log:     DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置，返回合并后的全部错误。
func (c *Config) Validate() error {
	return multierr.Combine(
		c.Bus.Validate(),
		c.State.Validate(),
		c.Bridge.Validate(),
		c.Metrics.Validate(),
		c.LogSink.Validate(),
		c.Log.Validate(),
	)
}
