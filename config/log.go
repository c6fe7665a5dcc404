package config

import (
	"fmt"

	"github.com/aetherweave/go-portalbus/pkg/lib/log"
)

// LogConfig 宿主日志配置
type LogConfig struct {
	// Level 日志级别（debug/info/warn/error）
	// 默认值: "info"
	Level string `json:"level" yaml:"level"`

	// Format 输出格式（text/json）
	// 默认值: "text"
	Format string `json:"format" yaml:"format"`

	// FxEvents 是否输出 fx 依赖注入事件
	// 默认值: false
	FxEvents bool `json:"fx_events" yaml:"fx_events"`
}

// DefaultLogConfig 返回默认的日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: string(log.FormatText),
	}
}

// Validate 验证日志配置
func (c *LogConfig) Validate() error {
	if _, ok := log.ParseLevel(c.Level); !ok {
		return fmt.Errorf("log: unknown level %q", c.Level)
	}
	switch log.Format(c.Format) {
	case log.FormatText, log.FormatJSON, "":
		return nil
	default:
		return fmt.Errorf("log: unknown format %q", c.Format)
	}
}
