package mocks

import (
	"sort"
	"sync"
	"time"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// MockStatefulBus 模拟 StatefulBus 接口实现
type MockStatefulBus struct {
	mu      sync.Mutex
	emitter pkgif.Emitter
	state   map[types.EventName]pkgif.StateEntry
	seq     uint64

	// 可覆盖的方法
	EmitStatefulFunc func(name types.EventName, payload any)

	// 调用记录
	EmitStatefulCalls []EmitCall
	ClearStateCalls   [][]types.EventName
}

// NewMockStatefulBus 创建 MockStatefulBus
func NewMockStatefulBus(emitter pkgif.Emitter) *MockStatefulBus {
	return &MockStatefulBus{
		emitter: emitter,
		state:   make(map[types.EventName]pkgif.StateEntry),
	}
}

var _ pkgif.StatefulBus = (*MockStatefulBus)(nil)

// EmitStateful 写入状态后发射
func (m *MockStatefulBus) EmitStateful(name types.EventName, payload any) {
	m.mu.Lock()
	m.EmitStatefulCalls = append(m.EmitStatefulCalls, EmitCall{Name: name, Payload: payload})
	m.seq++
	m.state[name] = pkgif.StateEntry{Data: payload, Timestamp: time.Now(), Version: m.seq}
	m.mu.Unlock()

	if m.EmitStatefulFunc != nil {
		m.EmitStatefulFunc(name, payload)
		return
	}
	m.emitter.Emit(name, payload)
}

// OnStateful 回放后注册
func (m *MockStatefulBus) OnStateful(name types.EventName, l pkgif.Listener) pkgif.Subscription {
	if v, ok := m.GetState(name); ok {
		l(v)
	}
	return m.emitter.On(name, l)
}

// GetState 返回当前状态
func (m *MockStatefulBus) GetState(name types.EventName) (any, bool) {
	e, ok := m.StateEntry(name)
	return e.Data, ok
}

// HasState 是否存在状态
func (m *MockStatefulBus) HasState(name types.EventName) bool {
	_, ok := m.StateEntry(name)
	return ok
}

// StateEntry 返回状态快照
func (m *MockStatefulBus) StateEntry(name types.EventName) (pkgif.StateEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.state[name]
	return e, ok
}

// ClearState 清除状态
func (m *MockStatefulBus) ClearState(names ...types.EventName) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ClearStateCalls = append(m.ClearStateCalls, names)
	if len(names) == 0 {
		m.state = make(map[types.EventName]pkgif.StateEntry)
		return
	}
	for _, name := range names {
		delete(m.state, name)
	}
}

// StateNames 返回已保存状态的事件名称
func (m *MockStatefulBus) StateNames() []types.EventName {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]types.EventName, 0, len(m.state))
	for name := range m.state {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
