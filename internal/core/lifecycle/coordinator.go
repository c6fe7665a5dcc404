// Package lifecycle 提供会话生命周期协调器
//
// 把宿主的认证事件落到总线上：
//   - 登出：发射 portal:auth:logout，清除全部有状态条目，执行重置钩子
//   - 令牌刷新：发射 portal:auth:token-refreshed，会话进入已认证阶段
//
// 登出事件通过 Emitter Core 发射而不是有状态发射，晚加入者不会收到过期的登出信号。
package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/lib/log"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

var logger = log.Logger("core/lifecycle")

// ============================================================================
//                              阶段定义
// ============================================================================

// SessionPhase 会话阶段
type SessionPhase int

const (
	// PhaseAnonymous 未认证（初始状态，登出后回到此状态）
	PhaseAnonymous SessionPhase = iota

	// PhaseAuthenticated 已认证（收到令牌刷新后）
	PhaseAuthenticated
)

// String 返回阶段字符串表示
func (p SessionPhase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("unknown(%d)", p)
	}
}

// ResetHook 登出时执行的重置工作
type ResetHook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   ResetHook
}

// ============================================================================
//                              生命周期协调器
// ============================================================================

// Coordinator 会话生命周期协调器
type Coordinator struct {
	bridge pkgif.Bridge

	mu    sync.RWMutex
	phase SessionPhase
	hooks []namedHook

	// 阶段变更回调
	onPhaseChange []func(old, new SessionPhase)
}

// NewCoordinator 创建生命周期协调器
func NewCoordinator(bridge pkgif.Bridge) *Coordinator {
	return &Coordinator{
		bridge: bridge,
		phase:  PhaseAnonymous,
	}
}

// ============================================================================
//                              阶段管理
// ============================================================================

// Phase 返回当前会话阶段
func (c *Coordinator) Phase() SessionPhase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// OnPhaseChange 注册阶段变更回调
//
// 回调在释放锁后同步调用。
func (c *Coordinator) OnPhaseChange(fn func(old, new SessionPhase)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPhaseChange = append(c.onPhaseChange, fn)
}

func (c *Coordinator) setPhase(target SessionPhase) {
	c.mu.Lock()
	old := c.phase
	if old == target {
		c.mu.Unlock()
		return
	}
	c.phase = target
	callbacks := make([]func(old, new SessionPhase), len(c.onPhaseChange))
	copy(callbacks, c.onPhaseChange)
	c.mu.Unlock()

	logger.Info("会话阶段变更", "from", old.String(), "to", target.String())

	for _, cb := range callbacks {
		cb(old, target)
	}
}

// ============================================================================
//                              重置钩子
// ============================================================================

// OnReset 注册登出时的重置钩子
//
// 钩子按注册顺序执行。
func (c *Coordinator) OnReset(name string, fn ResetHook) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, namedHook{name: name, fn: fn})
}

// ============================================================================
//                              认证事件
// ============================================================================

// Logout 执行完整的会话重置
//
// 顺序：
//  1. 发射 portal:auth:logout（非有状态，不回放）
//  2. 清除全部有状态条目（降级模式下跳过）
//  3. 执行全部重置钩子
//
// 登出监听器运行时状态尚未清除，仍可读取即将离开的会话数据。
// 钩子错误合并后返回，单个钩子失败不影响其余钩子。
func (c *Coordinator) Logout(ctx context.Context) error {
	c.bridge.Emit(types.EventAuthLogout, &types.LogoutEvent{})

	cleared := 0
	if sb, ok := c.bridge.Stateful(); ok {
		cleared = len(sb.StateNames())
		sb.ClearState()
	}

	c.mu.RLock()
	hooks := make([]namedHook, len(c.hooks))
	copy(hooks, c.hooks)
	c.mu.RUnlock()

	var err error
	for _, h := range hooks {
		if ctx.Err() != nil {
			err = multierr.Append(err, fmt.Errorf("reset hook %s: %w", h.name, ctx.Err()))
			continue
		}
		if herr := h.fn(ctx); herr != nil {
			logger.Warn("重置钩子失败", "hook", h.name, "error", herr)
			err = multierr.Append(err, fmt.Errorf("reset hook %s: %w", h.name, herr))
		}
	}

	c.setPhase(PhaseAnonymous)

	logger.Info("会话已重置", "clearedState", cleared, "hooks", len(hooks))
	return err
}

// TokenRefreshed 发射令牌刷新事件，会话进入已认证阶段
func (c *Coordinator) TokenRefreshed(ctx context.Context, evt *types.TokenRefreshedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if evt == nil {
		evt = &types.TokenRefreshedEvent{}
	}

	c.setPhase(PhaseAuthenticated)
	c.bridge.Emit(types.EventAuthTokenRefreshed, evt)
	return nil
}

// Reset 清除全部有状态条目（页面卸载）
func (c *Coordinator) Reset() {
	if sb, ok := c.bridge.Stateful(); ok {
		sb.ClearState()
	}
}
