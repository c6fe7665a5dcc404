package config

import "fmt"

// LogSinkConfig 模块日志接收配置
//
// 接收模块通过 wc:log / wc:error 上报的日志，转写到宿主日志。
type LogSinkConfig struct {
	// Enabled 是否启用
	// 默认值: true
	Enabled bool `json:"enabled" yaml:"enabled"`

	// RatePerSecond 每秒接收的记录数（0 = 不限制）
	// 默认值: 50
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second"`

	// Burst 突发容量
	// 默认值: 100
	Burst int `json:"burst" yaml:"burst"`

	// Capacity 保留的最近记录数
	// 默认值: 256
	Capacity int `json:"capacity" yaml:"capacity"`
}

// DefaultLogSinkConfig 返回默认的日志接收配置
func DefaultLogSinkConfig() LogSinkConfig {
	return LogSinkConfig{
		Enabled:       true,
		RatePerSecond: 50,
		Burst:         100,
		Capacity:      256,
	}
}

// Validate 验证日志接收配置
func (c *LogSinkConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RatePerSecond < 0 {
		return fmt.Errorf("log_sink: rate_per_second cannot be negative")
	}
	if c.RatePerSecond > 0 && c.Burst <= 0 {
		return fmt.Errorf("log_sink: burst must be positive when rate_per_second is set")
	}
	if c.Capacity < 0 {
		return fmt.Errorf("log_sink: capacity cannot be negative")
	}
	return nil
}
