// Package client 提供 UI 模块侧的事件总线客户端
//
// 模块由宿主之后独立加载，通过全局访问点找到宿主创建的总线：
//
//	c, err := client.New(client.Config{Source: "user-management"})
//	if errors.Is(err, client.ErrBusNotFound) {
//	    // 宿主尚未启动，由调用方决定是否重试
//	}
//
// 客户端从不创建私有的、与宿主断开的总线。
//
// # 能力模式
//
// 有状态操作（EmitStateful、OnStateful、ClearState 以及 SetPageTitle、
// RegisterNavigation）返回 Mode：
//
//   - ModeStateful: 宿主启用了有状态扩展，晚加入者会收到回放
//   - ModeDegraded: 宿主未启用，退化为普通发射/订阅，没有回放
//
// Capability() 在调用前报告当前模式，调用方可以据此提示用户。
//
// # 日志转发
//
// 客户端的每个动作都以 wc:log 事件上报给宿主；Debug 开启时同时写本地日志。
package client
