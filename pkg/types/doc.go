// Package types 定义 go-portalbus 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
//
// # 文件组织
//
//   - events.go   - EventName、标准事件目录、方向判定
//   - payloads.go - 标准事件的负载类型（带标签的变体）
//
// # 事件目录
//
// 标准事件分为两个方向：
//   - portal: 前缀  宿主 → 模块（登出、令牌刷新、语言切换、就绪）
//   - wc: 前缀      模块 → 宿主（导航、错误、通知、日志、页面元数据）
//
// 目录之外的任意名称都是合法的自定义事件（例如 "user:selected"），
// 负载类型不受约束，可用于有状态的跨模块状态共享。
package types
