// Package eventbus 实现进程内同步事件总线（Emitter Core）
//
// 按事件名称分发任意负载，支持：
//   - 多监听器，按注册顺序同步调用
//   - 通配监听器，在具名监听器之后调用
//   - Once 一次性监听器
//   - 每个监听器独立的 panic 隔离
//   - 并发安全
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//
//	sub := bus.On("theme:changed", func(payload any) {
//	    theme := payload.(string)
//	    // ...
//	})
//	defer sub.Close()
//
//	bus.Emit("theme:changed", "dark")
//
// # 发射语义
//
// Emit 在开始时对监听器列表做快照。发射期间新注册的监听器要到下一次
// Emit 才会被调用；发射期间被 Close 的监听器如果尚未轮到则被跳过。
// 调用监听器时不持有任何锁，监听器内部可以再次 Emit、On 或 Close。
//
// 监听器 panic 被 recover 并记录，随后继续调用其余监听器。
// 配置了 pkgif.BusObserver 时，每次 Emit 与每次 panic 都会通知观察者。
//
// # Fx 模块
//
//	app := fx.New(
//	    eventbus.Module(),
//	    fx.Invoke(func(em pkgif.Emitter) {
//	        em.On(types.EventNavigate, handle)
//	    }),
//	)
//
// # 架构定位
//
// Tier: Core Layer Level 1（无依赖）
//
// 依赖关系：
//   - 依赖：pkg/interfaces, pkg/types
//   - 被依赖：stateful, bridge, lifecycle
package eventbus
