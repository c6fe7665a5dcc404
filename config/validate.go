package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 配置无效
var ErrInvalidConfig = errors.New("invalid config")

// ValidateAll 验证整个配置的有效性
//
// 返回的错误包装 ErrInvalidConfig，并保留每一条具体问题。
func ValidateAll(c *Config) error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 空的指标命名空间 -> 使用默认值
//   - 设置了速率但突发容量为 0 -> 突发容量取速率的两倍（至少 1）
//   - 空的日志级别/格式 -> 使用默认值
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsConfig().Namespace
	}

	if c.LogSink.RatePerSecond > 0 && c.LogSink.Burst <= 0 {
		c.LogSink.Burst = max(1, int(c.LogSink.RatePerSecond*2))
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig().Level
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig().Format
	}

	if err := ValidateAll(c); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := ValidateAll(c); err != nil {
		panic(err)
	}
}
