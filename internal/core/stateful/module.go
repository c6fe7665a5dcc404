package stateful

import (
	"go.uber.org/fx"

	"github.com/aetherweave/go-portalbus/internal/core/statestore"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
)

// Params Fx 模块输入参数
type Params struct {
	fx.In

	Emitter  pkgif.Emitter
	Store    *statestore.Store
	Observer pkgif.BusObserver `optional:"true"`
}

// Module 返回 Fx 模块
//
// 依赖 eventbus 与 statestore 模块。
func Module() fx.Option {
	return fx.Module("stateful",
		fx.Provide(ProvideStatefulBus),
	)
}

// ProvideStatefulBus 提供 StatefulBus 实例
func ProvideStatefulBus(p Params) pkgif.StatefulBus {
	return New(p.Emitter, p.Store, WithObserver(p.Observer))
}
