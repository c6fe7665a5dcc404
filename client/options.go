package client

import (
	"github.com/aetherweave/go-portalbus/internal/core/bridge"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
)

// DefaultLocale 默认语言
const DefaultLocale = "en"

// Config 客户端配置
type Config struct {
	// Source 模块标识，出现在每条上报的日志与错误中（必填）
	Source string

	// Locale 初始语言，默认 "en"
	Locale string

	// Debug 同时写本地日志
	Debug bool
}

// Option 客户端选项
type Option func(*options)

type options struct {
	registry *bridge.Registry
	bridge   pkgif.Bridge
}

// WithRegistry 从指定注册表查找总线
//
// 默认使用进程级注册表（portalbus.DefaultRegistry）。
func WithRegistry(r *bridge.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithBridge 直接使用给定的句柄，跳过注册表查找
func WithBridge(b pkgif.Bridge) Option {
	return func(o *options) {
		o.bridge = b
	}
}
