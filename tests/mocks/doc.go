// Package mocks 提供公共接口的测试 Mock 实现
//
// # 核心 Mock
//
//   - MockBridge: 模拟 interfaces.Bridge，记录每次发射并同步投递给监听器
//   - MockStatefulBus: 模拟 interfaces.StatefulBus，内存状态 + 晚加入者回放
//   - MockSubscription: 模拟 interfaces.Subscription
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 记录调用历史，便于验证测试行为
// 3. 简化实现: 不隔离监听器 panic，不做快照
//
// # 使用示例
//
//	func TestClientNavigate(t *testing.T) {
//	    br := mocks.NewMockBridge()
//	    c, _ := client.New(client.Config{Source: "users"}, client.WithBridge(br))
//	    c.Navigate("/users/1", false)
//
//	    if len(br.Emitted(types.EventNavigate)) != 1 {
//	        t.Error("expected one navigate emit")
//	    }
//	}
package mocks
