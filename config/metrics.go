package config

import (
	"fmt"
	"regexp"
)

var metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用 prometheus 指标
	// 默认值: true
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Namespace 指标命名空间
	// 默认值: "portalbus"
	Namespace string `json:"namespace" yaml:"namespace"`
}

// DefaultMetricsConfig 返回默认的指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "portalbus",
	}
}

// Validate 验证指标配置
func (c *MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !metricNamespace.MatchString(c.Namespace) {
		return fmt.Errorf("metrics: invalid namespace %q", c.Namespace)
	}
	return nil
}
