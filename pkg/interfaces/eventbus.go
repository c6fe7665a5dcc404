// Package interfaces 定义 go-portalbus 公共接口
//
// 本文件定义事件总线接口：Emitter Core、Stateful Bus 与 Bridge 句柄。
package interfaces

import (
	"time"

	"github.com/aetherweave/go-portalbus/pkg/types"
)

// ============================================================================
//                              监听器
// ============================================================================

// Listener 具名事件监听器
//
// payload 按引用原样传递，总线不做任何序列化。
type Listener func(payload any)

// WildcardListener 通配监听器，观察所有事件名称
type WildcardListener func(name types.EventName, payload any)

// Subscription 订阅句柄
//
// Close 精确移除绑定的那一个监听器，可重复调用，不返回错误。
type Subscription interface {
	// ID 返回订阅唯一标识
	ID() string

	// Event 返回订阅的事件名称（通配订阅为空）
	Event() types.EventName

	// Active 订阅是否仍然有效
	Active() bool

	// Close 取消订阅
	Close() error
}

// ============================================================================
//                              Emitter Core
// ============================================================================

// Emitter 定义发布/订阅核心接口
type Emitter interface {
	// On 注册具名监听器，调用顺序即注册顺序
	On(name types.EventName, l Listener) Subscription

	// Once 注册只触发一次的监听器
	Once(name types.EventName, l Listener) Subscription

	// OnAny 注册通配监听器，在具名监听器之后调用
	OnAny(l WildcardListener) Subscription

	// Off 取消订阅，等价于 sub.Close()
	Off(sub Subscription)

	// Emit 同步发射事件，所有监听器返回后才返回
	Emit(name types.EventName, payload any)

	// ListenerCount 返回具名监听器数量
	ListenerCount(name types.EventName) int

	// WildcardCount 返回通配监听器数量
	WildcardCount() int

	// RemoveAllListeners 移除监听器；不带参数时移除全部（含通配）
	RemoveAllListeners(names ...types.EventName)

	// EventNames 返回当前有具名监听器的事件名称（已排序）
	EventNames() []types.EventName
}

// ============================================================================
//                              Stateful Bus
// ============================================================================

// StateEntry 状态条目快照
type StateEntry struct {
	// Data 最近一次 EmitStateful 的负载
	Data any

	// Timestamp 创建/更新时间（单调不减）
	Timestamp time.Time

	// Version 存储内单调递增的写入序号
	Version uint64
}

// StatefulBus 定义有状态总线接口
//
// 记住每个事件名称的最新值，并向晚加入的订阅者重放。
type StatefulBus interface {
	// EmitStateful 写入状态后发射事件
	EmitStateful(name types.EventName, payload any)

	// OnStateful 若已有状态则立即同步回放，然后注册监听器
	OnStateful(name types.EventName, l Listener) Subscription

	// GetState 返回当前状态（无订阅副作用）
	GetState(name types.EventName) (any, bool)

	// HasState 检查是否存在状态
	HasState(name types.EventName) bool

	// StateEntry 返回带时间戳的状态快照
	StateEntry(name types.EventName) (StateEntry, bool)

	// ClearState 清除状态；不带参数时清除全部
	ClearState(names ...types.EventName)

	// StateNames 返回已保存状态的事件名称（已排序）
	StateNames() []types.EventName
}

// ============================================================================
//                              Bridge
// ============================================================================

// Bridge 全局访问点句柄
//
// 暴露 Emitter Core 操作，以及嵌套的 Stateful Bus。
// 宿主未启用有状态扩展时 Stateful() 返回 false（降级模式）。
type Bridge interface {
	Emitter

	// Stateful 返回有状态总线
	Stateful() (StatefulBus, bool)
}

// ============================================================================
//                              观察者
// ============================================================================

// BusObserver 总线观察者（指标、诊断）
//
//go:generate mockgen -destination=../../tests/mocks/observer_gomock.go -package=mocks . BusObserver
//
// 回调在发射路径上同步执行，实现必须快速且不得阻塞。
type BusObserver interface {
	// OnEmit 每次 Emit 完成后调用，delivered 为实际调用的监听器数量
	OnEmit(name types.EventName, delivered int)

	// OnListenerPanic 监听器 panic 被隔离后调用
	OnListenerPanic(name types.EventName, subscriptionID string, recovered any)
}
