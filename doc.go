// Package portalbus 提供微前端门户的跨模块事件总线
//
// 门户宿主（host shell）与独立加载的 UI 模块通过同一个进程内总线通信，
// 有状态扩展记住每个事件名称的最新值，晚加入的订阅者立即收到它。
//
// # 核心概念
//
//   - Portal: 宿主门面，创建并发布全局总线
//   - Bridge: 全局访问点，模块通过 Registry 查找宿主创建的总线
//   - Stateful Bus: 晚加入者回放（EmitStateful / OnStateful）
//   - client.Client: 模块侧客户端（见 client 包）
//
// # 快速开始
//
//	// 宿主
//	portal, err := portalbus.Start(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer portal.Close()
//
//	portal.OnNavigate(func(e *types.NavigateEvent) {
//	    router.Push(e.Path)
//	})
//	portal.OnPageTitle(func(e *types.PageTitleEvent) {
//	    header.SetTitle(e.Title)
//	})
//
//	// 模块（之后加载）
//	c, err := client.New(client.Config{Source: "user-management"})
//	if err != nil {
//	    return err // 宿主尚未创建总线
//	}
//	c.SetPageTitle("Users", "")
//	c.OnLogout(func() { resetLocalState() })
//
// # 事件命名
//
// 宿主 → 模块的事件以 "portal:" 开头，模块 → 宿主的事件以 "wc:" 开头。
// 总线本身对名称一视同仁，自定义名称（如 "user:selected"）携带任意负载。
// 标准事件目录见 pkg/types。
//
// # 投递语义
//
// 投递是同步的：Emit 在所有监听器返回后才返回，监听器按注册顺序调用，
// 通配监听器在具名监听器之后调用。监听器 panic 被隔离并记录。
// 负载按引用传递，从不序列化。
//
// # 文件组织
//
//	portal.go            Portal 结构与访问器
//	portal_lifecycle.go  启动/停止/关闭
//	portal_events.go     宿主发布者与监听器
//	typed.go             泛型类型化辅助函数
//	fx.go                Fx 应用装配
//	options.go           选项函数
//	errors.go            公共错误
package portalbus
