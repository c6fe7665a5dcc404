package portalbus

import (
	"context"
	"fmt"
	"time"
)

// ════════════════════════════════════════════════════════════════════════════
//                              门户状态
// ════════════════════════════════════════════════════════════════════════════

// PortalState 门户状态
type PortalState int

const (
	// StateIdle 已创建，未启动
	StateIdle PortalState = iota
	// StateStarting 启动中
	StateStarting
	// StateRunning 运行中
	StateRunning
	// StateStopping 停止中
	StateStopping
	// StateStopped 已停止
	StateStopped
)

// String 返回状态字符串
func (s PortalState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// 启动/停止超时（ctx 未设置截止时间时使用）
const (
	startTimeout = 15 * time.Second
	stopTimeout  = 15 * time.Second
)

// ════════════════════════════════════════════════════════════════════════════
//                              启动与停止
// ════════════════════════════════════════════════════════════════════════════

// Start 启动门户
//
// 已停止的门户不能再次启动。
func (p *Portal) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.state == StateStopped {
		return ErrPortalClosed
	}
	if p.state != StateIdle {
		return ErrAlreadyStarted
	}

	p.state = StateStarting
	logger.Info("正在启动门户")

	startCtx, cancel := withDefaultTimeout(ctx, startTimeout)
	defer cancel()

	if err := p.app.Start(startCtx); err != nil {
		p.state = StateStopped
		logger.Error("启动门户失败", "error", err)
		return fmt.Errorf("start portal: %w", err)
	}

	p.state = StateRunning
	logger.Info("门户已启动", "registry", p.registry.State().String())
	return nil
}

// Stop 停止门户
//
// 停止时移除本门户总线上的全部监听器并清除有状态条目。
// 注册表中的句柄保持可用（注册表单调，不会回到不可用状态）。
func (p *Portal) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked(ctx)
}

func (p *Portal) stopLocked(ctx context.Context) error {
	if p.state != StateRunning {
		return ErrNotStarted
	}

	p.state = StateStopping
	logger.Info("正在停止门户")

	stopCtx, cancel := withDefaultTimeout(ctx, stopTimeout)
	defer cancel()

	err := p.app.Stop(stopCtx)
	p.state = StateStopped
	if err != nil {
		logger.Warn("停止门户出错", "error", err)
		return fmt.Errorf("stop portal: %w", err)
	}

	logger.Info("门户已停止")
	return nil
}

// Close 关闭门户
//
// 运行中的门户先停止。重复调用返回首次关闭的结果。
func (p *Portal) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return p.stopErr
	}
	p.closed = true

	if p.state == StateRunning {
		p.stopErr = p.stopLocked(context.Background())
	} else {
		p.state = StateStopped
	}
	return p.stopErr
}

// State 返回门户状态
func (p *Portal) State() PortalState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// IsRunning 门户是否运行中
func (p *Portal) IsRunning() bool {
	return p.State() == StateRunning
}

// checkRunning 发布前检查门户状态
func (p *Portal) checkRunning() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortalClosed
	}
	if p.state != StateRunning {
		return ErrNotStarted
	}
	return nil
}

func withDefaultTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
