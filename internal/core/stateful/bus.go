// Package stateful 实现有状态总线（晚加入者回放）
//
// 在 Emitter Core 之上组合状态存储：EmitStateful 先记录最新值再发射，
// OnStateful 在注册监听器之前同步回放已有的最新值。
// 普通的 Emit 不写入状态，普通的 On 不回放。
package stateful

import (
	"sync/atomic"

	"github.com/aetherweave/go-portalbus/internal/core/statestore"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/lib/log"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

var logger = log.Logger("core/stateful")

// Bus 有状态总线
type Bus struct {
	emitter  pkgif.Emitter
	store    *statestore.Store
	observer pkgif.BusObserver
}

var _ pkgif.StatefulBus = (*Bus)(nil)

// Option 有状态总线选项
type Option func(*Bus)

// WithObserver 设置观察者，回放中的监听器 panic 同样上报
//
// nil 观察者被忽略。
func WithObserver(o pkgif.BusObserver) Option {
	return func(b *Bus) {
		if o != nil {
			b.observer = o
		}
	}
}

// New 创建有状态总线
func New(emitter pkgif.Emitter, store *statestore.Store, opts ...Option) *Bus {
	b := &Bus{emitter: emitter, store: store}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ============================================================================
// 发射与订阅
// ============================================================================

// EmitStateful 写入状态后发射事件
//
// 写入先于发射完成：监听器内部调用 GetState 能读到本次负载。
func (b *Bus) EmitStateful(name types.EventName, payload any) {
	e := b.store.Set(name, payload)
	logger.Debug("发射有状态事件", "event", name, "version", e.Version)
	b.emitter.Emit(name, payload)
}

// OnStateful 回放最新值后注册监听器
//
// 已有状态时，在返回前、注册前同步调用 l(state)。注册完成后再读一次状态，
// 若存在监听器尚未见过的版本（回放中重入 EmitStateful 或其他 goroutine 写入），
// 补发最新值一次。已经通过正常发射路径收到该版本时不再补发。
func (b *Bus) OnStateful(name types.EventName, l pkgif.Listener) pkgif.Subscription {
	if l == nil {
		return b.emitter.On(name, nil)
	}

	t := &tracker{}

	before, had := b.store.Get(name)
	if had {
		t.observe(before.Version)
		b.replay(name, "", l, before.Data)
	}

	sub := b.emitter.On(name, func(payload any) {
		if !t.settled.Load() {
			if e, ok := b.store.Get(name); ok {
				t.observe(e.Version)
			}
		}
		l(payload)
	})

	after, has := b.store.Get(name)
	catchUp := has && after.Version > t.seen.Load() && sub.Active()
	t.settled.Store(true)

	if catchUp {
		logger.Debug("回放期间状态已更新，补发最新值", "event", name, "version", after.Version)
		b.replay(name, sub.ID(), l, after.Data)
	}

	return sub
}

// tracker 记录监听器在注册窗口内见过的最高状态版本
type tracker struct {
	seen    atomic.Uint64
	settled atomic.Bool
}

func (t *tracker) observe(v uint64) {
	for {
		cur := t.seen.Load()
		if v <= cur || t.seen.CompareAndSwap(cur, v) {
			return
		}
	}
}

// replay 同步回放，隔离 panic
//
// 注册前的回放没有订阅 ID，上报时 subscriptionID 为空。
func (b *Bus) replay(name types.EventName, subID string, l pkgif.Listener, data any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("回放监听器 panic", "event", name, "subscription", subID, "panic", r)
			if b.observer != nil {
				b.observer.OnListenerPanic(name, subID, r)
			}
		}
	}()
	l(data)
}

// ============================================================================
// 状态查询
// ============================================================================

// GetState 返回当前状态
func (b *Bus) GetState(name types.EventName) (any, bool) {
	e, ok := b.store.Get(name)
	if !ok {
		return nil, false
	}
	return e.Data, true
}

// HasState 检查是否存在状态
func (b *Bus) HasState(name types.EventName) bool {
	return b.store.Has(name)
}

// StateEntry 返回带时间戳的状态快照
func (b *Bus) StateEntry(name types.EventName) (pkgif.StateEntry, bool) {
	e, ok := b.store.Get(name)
	if !ok {
		return pkgif.StateEntry{}, false
	}
	return pkgif.StateEntry{Data: e.Data, Timestamp: e.Timestamp, Version: e.Version}, true
}

// ClearState 清除状态
//
// 不带参数时清除全部；已注册的监听器不受影响。
func (b *Bus) ClearState(names ...types.EventName) {
	if len(names) == 0 {
		b.store.Clear()
		return
	}
	for _, name := range names {
		b.store.Delete(name)
	}
}

// StateNames 返回已保存状态的事件名称
func (b *Bus) StateNames() []types.EventName {
	return b.store.Names()
}
