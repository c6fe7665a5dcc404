package eventbus

import (
	"context"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"go.uber.org/fx"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params Fx 模块输入参数
type Params struct {
	fx.In

	Observer pkgif.BusObserver `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Bus     *Bus
	Emitter pkgif.Emitter
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideBus 提供 Bus 实例
func ProvideBus(p Params) Result {
	bus := NewBus(WithObserver(p.Observer))
	return Result{
		Bus:     bus,
		Emitter: bus,
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC  fx.Lifecycle
	Bus *Bus
}

// registerLifecycle 注册生命周期
//
// 停止时移除全部监听器，防止已停止应用的闭包继续被调用。
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			n := len(input.Bus.EventNames())
			input.Bus.RemoveAllListeners()
			logger.Debug("事件总线已停止", "events", n)
			return nil
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "eventbus"
	// Description 模块描述
	Description = "同步发布/订阅核心，按注册顺序调用监听器并隔离监听器 panic"
)
