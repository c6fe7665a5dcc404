package statestore

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"
)

// Params Fx 模块输入参数
type Params struct {
	fx.In

	Clock clock.Clock `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("statestore",
		fx.Provide(ProvideStore),
	)
}

// ProvideStore 提供 Store 实例
func ProvideStore(p Params) *Store {
	return New(WithClock(p.Clock))
}
