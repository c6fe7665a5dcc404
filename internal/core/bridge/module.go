package bridge

import (
	"go.uber.org/fx"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
)

// Params Fx 模块输入参数
type Params struct {
	fx.In

	Emitter  pkgif.Emitter
	Stateful pkgif.StatefulBus `optional:"true"`
	Registry *Registry         `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Bridge pkgif.Bridge
}

// Module 返回 Fx 模块
//
// 未注入 Registry 时使用 Default()。
func Module() fx.Option {
	return fx.Module("bridge",
		fx.Provide(ProvideBridge),
	)
}

// ProvideBridge 从注册表获取或创建句柄
//
// 注册表中已有句柄时复用它，本应用构造的 Emitter 与 StatefulBus 不再使用。
func ProvideBridge(p Params) Result {
	reg := p.Registry
	if reg == nil {
		reg = Default()
	}

	h, created := reg.Acquire(func() pkgif.Bridge {
		return NewHandle(p.Emitter, p.Stateful)
	})
	if !created {
		logger.Warn("复用已存在的全局事件总线")
	}
	return Result{Bridge: h}
}
