package eventbus

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// ============================================================================
// Subscription 实现
// ============================================================================

// Subscription 订阅句柄
//
// 每个句柄绑定唯一一个监听器注册；同一函数注册两次得到两个独立句柄。
type Subscription struct {
	bus      *Bus
	id       string
	name     types.EventName
	wildcard bool
	once     bool

	listener    pkgif.Listener
	anyListener pkgif.WildcardListener

	fired     atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once
}

var _ pkgif.Subscription = (*Subscription)(nil)

func newSubscription(b *Bus, name types.EventName, l pkgif.Listener, once bool) *Subscription {
	return &Subscription{
		bus:      b,
		id:       uuid.NewString(),
		name:     name,
		once:     once,
		listener: l,
	}
}

func newWildcardSubscription(b *Bus, l pkgif.WildcardListener) *Subscription {
	return &Subscription{
		bus:         b,
		id:          uuid.NewString(),
		wildcard:    true,
		anyListener: l,
	}
}

// ID 返回订阅唯一标识
func (s *Subscription) ID() string { return s.id }

// Event 返回订阅的事件名称
func (s *Subscription) Event() types.EventName { return s.name }

// Active 订阅是否仍然有效
func (s *Subscription) Active() bool { return !s.closed.Load() }

// Close 取消订阅
//
// 并发安全，可以多次调用。正在进行的 Emit 中尚未轮到的调用会被跳过。
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.bus.removeSub(s)
	})
	return nil
}

// deactivate 标记失效（节点已由总线移除）
func (s *Subscription) deactivate() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
	})
}

// deliver 调用监听器，返回是否实际调用
func (s *Subscription) deliver(name types.EventName, payload any) (called bool) {
	if s.closed.Load() {
		return false
	}
	if s.once {
		if !s.fired.CompareAndSwap(false, true) {
			return false
		}
		_ = s.Close()
	}

	defer func() {
		if r := recover(); r != nil {
			s.bus.recovered(name, s, r)
		}
	}()

	called = true
	if s.wildcard {
		if s.anyListener != nil {
			s.anyListener(name, payload)
		}
		return
	}
	if s.listener != nil {
		s.listener(payload)
	}
	return
}
