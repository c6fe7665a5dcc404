// Package bridge 实现全局访问点
//
// 宿主在页面（进程）生命周期内创建唯一的总线句柄并发布到 Registry，
// 之后独立加载的模块从同一 Registry 查找它。
package bridge

import (
	"fmt"
	"sync"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/lib/log"
)

var logger = log.Logger("core/bridge")

// ============================================================================
// 状态
// ============================================================================

// State Registry 状态
type State int

const (
	// StateUnavailable 尚未创建句柄
	StateUnavailable State = iota
	// StateAvailable 句柄已创建（不可回退）
	StateAvailable
)

// String 返回状态的字符串表示
func (s State) String() string {
	switch s {
	case StateAvailable:
		return "available"
	default:
		return "unavailable"
	}
}

// ============================================================================
// Registry
// ============================================================================

// Factory 句柄工厂
type Factory func() pkgif.Bridge

// Registry 全局句柄注册表
//
// 只有两个状态：Unavailable → Available，单向且不可重置。
type Registry struct {
	mu     sync.RWMutex
	handle pkgif.Bridge
}

// NewRegistry 创建独立注册表（测试或嵌入使用）
func NewRegistry() *Registry {
	return &Registry{}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default 返回进程级注册表
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Acquire 获取句柄，必要时创建
//
// 工厂只在 Unavailable 状态下运行；之后的调用返回已有句柄，created 为 false。
// 工厂返回 nil 时注册表保持 Unavailable。
func (r *Registry) Acquire(factory Factory) (pkgif.Bridge, bool) {
	r.mu.RLock()
	h := r.handle
	r.mu.RUnlock()
	if h != nil {
		return h, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handle != nil {
		return r.handle, false
	}
	if factory == nil {
		return nil, false
	}

	h = factory()
	if h == nil {
		logger.Warn("句柄工厂返回 nil")
		return nil, false
	}
	r.handle = h

	_, stateful := h.Stateful()
	logger.Info("全局事件总线已创建", "stateful", stateful)
	return h, true
}

// Lookup 查找句柄
//
// Unavailable 时返回包装的 ErrBusNotFound。
func (r *Registry) Lookup() (pkgif.Bridge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.handle == nil {
		return nil, fmt.Errorf("%w: the host shell must create the bus before modules load", ErrBusNotFound)
	}
	return r.handle, nil
}

// State 返回当前状态
func (r *Registry) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.handle == nil {
		return StateUnavailable
	}
	return StateAvailable
}
