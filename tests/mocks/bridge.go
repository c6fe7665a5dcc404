package mocks

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// EmitCall 一次发射记录
type EmitCall struct {
	Name    types.EventName
	Payload any
}

// MockBridge 模拟 Bridge 接口实现
//
// Stateful 为 nil 时表示降级模式。
type MockBridge struct {
	mu sync.Mutex

	listeners map[types.EventName][]*MockSubscription
	wildcard  []*MockSubscription

	// StatefulBus 嵌套的有状态总线（nil = 降级）
	StatefulBus pkgif.StatefulBus

	// 可覆盖的方法
	EmitFunc func(name types.EventName, payload any)

	// 调用记录
	EmitCalls []EmitCall
	OnCalls   []types.EventName
}

// NewMockBridge 创建降级模式的 MockBridge
func NewMockBridge() *MockBridge {
	return &MockBridge{
		listeners: make(map[types.EventName][]*MockSubscription),
	}
}

// NewMockStatefulBridge 创建带 MockStatefulBus 的 MockBridge
func NewMockStatefulBridge() (*MockBridge, *MockStatefulBus) {
	b := NewMockBridge()
	sb := NewMockStatefulBus(b)
	b.StatefulBus = sb
	return b, sb
}

var _ pkgif.Bridge = (*MockBridge)(nil)

// On 注册具名监听器
func (m *MockBridge) On(name types.EventName, l pkgif.Listener) pkgif.Subscription {
	return m.add(name, l, false)
}

// Once 注册一次性监听器
func (m *MockBridge) Once(name types.EventName, l pkgif.Listener) pkgif.Subscription {
	return m.add(name, l, true)
}

func (m *MockBridge) add(name types.EventName, l pkgif.Listener, once bool) *MockSubscription {
	sub := &MockSubscription{id: uuid.NewString(), name: name, listener: l, once: once, bridge: m}

	m.mu.Lock()
	m.OnCalls = append(m.OnCalls, name)
	m.listeners[name] = append(m.listeners[name], sub)
	m.mu.Unlock()
	return sub
}

// OnAny 注册通配监听器
func (m *MockBridge) OnAny(l pkgif.WildcardListener) pkgif.Subscription {
	sub := &MockSubscription{id: uuid.NewString(), anyListener: l, bridge: m}

	m.mu.Lock()
	m.wildcard = append(m.wildcard, sub)
	m.mu.Unlock()
	return sub
}

// Off 取消订阅
func (m *MockBridge) Off(sub pkgif.Subscription) {
	if sub != nil {
		_ = sub.Close()
	}
}

// Emit 记录并同步投递
func (m *MockBridge) Emit(name types.EventName, payload any) {
	m.mu.Lock()
	m.EmitCalls = append(m.EmitCalls, EmitCall{Name: name, Payload: payload})
	named := append([]*MockSubscription(nil), m.listeners[name]...)
	wildcard := append([]*MockSubscription(nil), m.wildcard...)
	m.mu.Unlock()

	if m.EmitFunc != nil {
		m.EmitFunc(name, payload)
		return
	}

	for _, sub := range named {
		if sub.Active() {
			if sub.once {
				_ = sub.Close()
			}
			sub.listener(payload)
		}
	}
	for _, sub := range wildcard {
		if sub.Active() {
			sub.anyListener(name, payload)
		}
	}
}

// Emitted 返回指定名称的发射记录
func (m *MockBridge) Emitted(name types.EventName) []EmitCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []EmitCall
	for _, c := range m.EmitCalls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ListenerCount 返回具名监听器数量
func (m *MockBridge) ListenerCount(name types.EventName) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners[name])
}

// WildcardCount 返回通配监听器数量
func (m *MockBridge) WildcardCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.wildcard)
}

// RemoveAllListeners 移除监听器
func (m *MockBridge) RemoveAllListeners(names ...types.EventName) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(names) == 0 {
		m.listeners = make(map[types.EventName][]*MockSubscription)
		m.wildcard = nil
		return
	}
	for _, name := range names {
		delete(m.listeners, name)
	}
}

// EventNames 返回有具名监听器的事件名称
func (m *MockBridge) EventNames() []types.EventName {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]types.EventName, 0, len(m.listeners))
	for name, subs := range m.listeners {
		if len(subs) > 0 {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Stateful 返回嵌套的有状态总线
func (m *MockBridge) Stateful() (pkgif.StatefulBus, bool) {
	return m.StatefulBus, m.StatefulBus != nil
}

func (m *MockBridge) remove(sub *MockSubscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sub.anyListener != nil {
		m.wildcard = dropSub(m.wildcard, sub)
		return
	}
	m.listeners[sub.name] = dropSub(m.listeners[sub.name], sub)
	if len(m.listeners[sub.name]) == 0 {
		delete(m.listeners, sub.name)
	}
}

func dropSub(subs []*MockSubscription, target *MockSubscription) []*MockSubscription {
	out := make([]*MockSubscription, 0, len(subs))
	for _, s := range subs {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

// ============================================================================
//                              MockSubscription
// ============================================================================

// MockSubscription 模拟 Subscription 接口实现
type MockSubscription struct {
	id          string
	name        types.EventName
	listener    pkgif.Listener
	anyListener pkgif.WildcardListener
	once        bool

	mu     sync.Mutex
	closed bool
	bridge *MockBridge

	// 调用记录
	CloseCalls int
}

// ID 返回订阅标识
func (s *MockSubscription) ID() string { return s.id }

// Event 返回事件名称
func (s *MockSubscription) Event() types.EventName { return s.name }

// Active 订阅是否有效
func (s *MockSubscription) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Close 取消订阅（幂等）
func (s *MockSubscription) Close() error {
	s.mu.Lock()
	s.CloseCalls++
	already := s.closed
	s.closed = true
	s.mu.Unlock()

	if !already && s.bridge != nil {
		s.bridge.remove(s)
	}
	return nil
}
