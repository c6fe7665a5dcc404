package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保持默认值。
//
// 示例 JSON:
//
//	{
//	  "state": {"enabled": true},
//	  "metrics": {"namespace": "shell"},
//	  "log": {"level": "debug"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// FromYAML 从 YAML 数据创建配置
//
// 字段名与 JSON 相同，未出现的字段保持默认值。
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从文件加载配置
//
// 按扩展名选择格式：.yaml/.yml 使用 YAML，其余使用 JSON。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return FromJSON(data)
	}
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "full": 默认配置，全部功能开启
//   - "degraded": 关闭有状态扩展（模块客户端以降级模式运行）
//   - "minimal": 只保留总线与有状态扩展，关闭指标与日志接收
//   - "debug": debug 级别日志并输出 fx 事件
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	switch presetName {
	case "full", "":
		return nil
	case "degraded":
		cfg.State.Enabled = false
		return nil
	case "minimal":
		cfg.Metrics.Enabled = false
		cfg.Bus.ObserveEmits = false
		cfg.LogSink.Enabled = false
		return nil
	case "debug":
		cfg.Log.Level = "debug"
		cfg.Log.FxEvents = true
		return nil
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
}

// CloneConfig 克隆配置
//
// 所有子配置都是值类型，浅拷贝即深拷贝。
func CloneConfig(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}
	cloned := *cfg
	return &cloned
}

// ============================================================================
//                              环境变量覆盖
// ============================================================================

// EnvPrefix 环境变量前缀
const EnvPrefix = "PORTALBUS_"

// ApplyEnv 用环境变量覆盖配置
//
// lookup 通常为 os.LookupEnv。支持的变量：
//
//	PORTALBUS_STATE_ENABLED, PORTALBUS_BRIDGE_ISOLATED, PORTALBUS_BUS_OBSERVE_EMITS,
//	PORTALBUS_METRICS_ENABLED, PORTALBUS_METRICS_NAMESPACE,
//	PORTALBUS_LOGSINK_ENABLED, PORTALBUS_LOGSINK_RATE, PORTALBUS_LOGSINK_BURST,
//	PORTALBUS_LOG_LEVEL, PORTALBUS_LOG_FORMAT, PORTALBUS_LOG_FX_EVENTS
//
// 解析失败的变量全部收集后一起返回，已成功的覆盖仍然生效。
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	e := envReader{lookup: lookup}
	e.boolean("STATE_ENABLED", &cfg.State.Enabled)
	e.boolean("BRIDGE_ISOLATED", &cfg.Bridge.Isolated)
	e.boolean("BUS_OBSERVE_EMITS", &cfg.Bus.ObserveEmits)
	e.boolean("METRICS_ENABLED", &cfg.Metrics.Enabled)
	e.str("METRICS_NAMESPACE", &cfg.Metrics.Namespace)
	e.boolean("LOGSINK_ENABLED", &cfg.LogSink.Enabled)
	e.float("LOGSINK_RATE", &cfg.LogSink.RatePerSecond)
	e.integer("LOGSINK_BURST", &cfg.LogSink.Burst)
	e.str("LOG_LEVEL", &cfg.Log.Level)
	e.str("LOG_FORMAT", &cfg.Log.Format)
	e.boolean("LOG_FX_EVENTS", &cfg.Log.FxEvents)
	return e.err
}

type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(EnvPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (e *envReader) fail(key string, err error) {
	e.err = multierr.Append(e.err, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) boolean(key string, dst *bool) {
	if v, ok := e.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) integer(key string, dst *int) {
	if v, ok := e.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) float(key string, dst *float64) {
	if v, ok := e.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = f
	}
}
