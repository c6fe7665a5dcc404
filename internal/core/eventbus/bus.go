// Package eventbus 实现 Emitter Core
package eventbus

import (
	"sort"
	"sync"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/lib/log"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

var logger = log.Logger("core/eventbus")

// ============================================================================
// Bus 实现
// ============================================================================

// Bus 事件总线（Emitter Core）
type Bus struct {
	mu sync.RWMutex

	// nodes 事件名称节点映射
	nodes map[types.EventName]*node

	// wildcard 通配订阅者，按注册顺序
	wildcard []*Subscription

	observer pkgif.BusObserver
}

// node 事件名称节点
type node struct {
	name  types.EventName
	sinks []*Subscription // 订阅者列表，按注册顺序
}

// NewBus 创建新的事件总线
func NewBus(opts ...Option) *Bus {
	settings := &busSettings{}
	for _, opt := range opts {
		opt(settings)
	}

	return &Bus{
		nodes:    make(map[types.EventName]*node),
		observer: settings.observer,
	}
}

var _ pkgif.Emitter = (*Bus)(nil)

// ============================================================================
// 订阅
// ============================================================================

// On 注册具名监听器
func (b *Bus) On(name types.EventName, l pkgif.Listener) pkgif.Subscription {
	return b.add(newSubscription(b, name, l, false))
}

// Once 注册只触发一次的监听器
func (b *Bus) Once(name types.EventName, l pkgif.Listener) pkgif.Subscription {
	return b.add(newSubscription(b, name, l, true))
}

// OnAny 注册通配监听器
func (b *Bus) OnAny(l pkgif.WildcardListener) pkgif.Subscription {
	sub := newWildcardSubscription(b, l)

	b.mu.Lock()
	b.wildcard = append(b.wildcard, sub)
	b.mu.Unlock()

	logger.Debug("注册通配监听器", "subscription", sub.id)
	return sub
}

// Off 取消订阅
//
// nil 或其他总线的订阅同样安全，只调用其 Close。
func (b *Bus) Off(sub pkgif.Subscription) {
	if sub == nil {
		return
	}
	_ = sub.Close()
}

func (b *Bus) add(sub *Subscription) *Subscription {
	b.mu.Lock()
	n, ok := b.nodes[sub.name]
	if !ok {
		n = &node{name: sub.name}
		b.nodes[sub.name] = n
	}
	n.sinks = append(n.sinks, sub)
	b.mu.Unlock()

	logger.Debug("注册监听器", "event", sub.name, "subscription", sub.id, "once", sub.once)
	return sub
}

// ============================================================================
// 发射
// ============================================================================

// Emit 同步发射事件
//
// 在发射开始时对监听器列表做快照：
//   - 发射期间新注册的监听器不会收到本次事件
//   - 发射期间被取消、尚未轮到的监听器会被跳过
//
// 单个监听器 panic 被隔离并记录，不影响其余监听器，也不会传播给发布者。
func (b *Bus) Emit(name types.EventName, payload any) {
	b.mu.RLock()
	var named []*Subscription
	if n, ok := b.nodes[name]; ok {
		named = make([]*Subscription, len(n.sinks))
		copy(named, n.sinks)
	}
	wildcard := make([]*Subscription, len(b.wildcard))
	copy(wildcard, b.wildcard)
	b.mu.RUnlock()

	delivered := 0
	for _, sub := range named {
		if sub.deliver(name, payload) {
			delivered++
		}
	}
	for _, sub := range wildcard {
		if sub.deliver(name, payload) {
			delivered++
		}
	}

	if delivered == 0 {
		logger.Debug("事件无监听器", "event", name)
	}

	if b.observer != nil {
		b.observer.OnEmit(name, delivered)
	}
}

// recovered 监听器 panic 被隔离后调用
func (b *Bus) recovered(name types.EventName, sub *Subscription, rec any) {
	logger.Error("监听器 panic",
		"event", name,
		"subscription", sub.id,
		"panic", rec)

	if b.observer != nil {
		b.observer.OnListenerPanic(name, sub.id, rec)
	}
}

// ============================================================================
// 观测与清理
// ============================================================================

// ListenerCount 返回具名监听器数量
func (b *Bus) ListenerCount(name types.EventName) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n, ok := b.nodes[name]; ok {
		return len(n.sinks)
	}
	return 0
}

// WildcardCount 返回通配监听器数量
func (b *Bus) WildcardCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.wildcard)
}

// EventNames 返回当前有具名监听器的事件名称
func (b *Bus) EventNames() []types.EventName {
	b.mu.RLock()
	names := make([]types.EventName, 0, len(b.nodes))
	for name := range b.nodes {
		names = append(names, name)
	}
	b.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// RemoveAllListeners 移除监听器
//
// 不带参数时移除全部具名和通配监听器；带参数时只移除对应名称的具名监听器。
// 被移除的句柄变为无效，之后再 Close 为空操作。
func (b *Bus) RemoveAllListeners(names ...types.EventName) {
	var removed []*Subscription

	b.mu.Lock()
	if len(names) == 0 {
		for _, n := range b.nodes {
			removed = append(removed, n.sinks...)
		}
		removed = append(removed, b.wildcard...)
		b.nodes = make(map[types.EventName]*node)
		b.wildcard = nil
	} else {
		for _, name := range names {
			if n, ok := b.nodes[name]; ok {
				removed = append(removed, n.sinks...)
				delete(b.nodes, name)
			}
		}
	}
	b.mu.Unlock()

	for _, sub := range removed {
		sub.deactivate()
	}

	logger.Debug("移除监听器", "names", len(names), "removed", len(removed))
}

// removeSub 移除订阅
func (b *Bus) removeSub(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.wildcard {
		b.wildcard = without(b.wildcard, sub)
		return
	}

	n, ok := b.nodes[sub.name]
	if !ok {
		return
	}
	n.sinks = without(n.sinks, sub)

	// 没有订阅者时删除节点
	if len(n.sinks) == 0 {
		delete(b.nodes, sub.name)
	}
}

// without 返回移除 sub 后的新切片
//
// 总是分配新切片，已取出的快照不受影响。
func without(sinks []*Subscription, sub *Subscription) []*Subscription {
	out := make([]*Subscription, 0, len(sinks))
	for _, s := range sinks {
		if s != sub {
			out = append(out, s)
		}
	}
	return out
}
