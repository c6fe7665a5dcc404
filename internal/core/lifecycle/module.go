package lifecycle

import (
	"context"

	"go.uber.org/fx"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
)

// provideCoordinator 提供 Coordinator 实例
func provideCoordinator(bridge pkgif.Bridge) *Coordinator {
	return NewCoordinator(bridge)
}

// Module 返回 Fx 模块
//
// 提供会话生命周期协调器，依赖 bridge 模块。
func Module() fx.Option {
	return fx.Module("lifecycle",
		fx.Provide(
			provideCoordinator,
		),
		fx.Invoke(registerLifecycleHooks),
	)
}

// lifecycleHooksParams 生命周期钩子参数
type lifecycleHooksParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Coordinator *Coordinator
}

// registerLifecycleHooks 注册生命周期钩子
func registerLifecycleHooks(params lifecycleHooksParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			// 页面卸载：清除状态
			params.Coordinator.Reset()
			return nil
		},
	})
}
