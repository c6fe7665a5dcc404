// Package statestore 实现有状态总线的状态存储
package statestore

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/aetherweave/go-portalbus/pkg/lib/log"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

var logger = log.Logger("core/statestore")

// ============================================================================
// Entry
// ============================================================================

// Entry 状态条目
type Entry struct {
	// Data 最近一次写入的负载（按引用保存）
	Data any

	// Timestamp 写入时间，单调不减
	Timestamp time.Time

	// Version 存储内全局递增序号
	Version uint64
}

// ============================================================================
// Store 实现
// ============================================================================

// Store 状态存储
//
// 每个事件名称最多一个条目，后写覆盖先写。
type Store struct {
	mu      sync.RWMutex
	entries map[types.EventName]Entry
	clock   clock.Clock

	seq  uint64
	last time.Time
}

// Option 存储选项
type Option func(*Store)

// WithClock 设置时钟（测试使用 clock.NewMock()）
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// New 创建状态存储
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[types.EventName]Entry),
		clock:   clock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set 写入状态，返回写入后的条目
func (s *Store) Set(name types.EventName, data any) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	// 时钟回拨时沿用上一次的时间戳
	if now.Before(s.last) {
		now = s.last
	}
	s.last = now
	s.seq++

	e := Entry{Data: data, Timestamp: now, Version: s.seq}
	s.entries[name] = e
	return e
}

// Get 读取状态
func (s *Store) Get(name types.EventName) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[name]
	return e, ok
}

// Has 检查是否存在状态
func (s *Store) Has(name types.EventName) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[name]
	return ok
}

// Delete 删除状态，返回是否存在
func (s *Store) Delete(name types.EventName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; !ok {
		return false
	}
	delete(s.entries, name)
	return true
}

// Clear 清除全部状态，返回清除数量
func (s *Store) Clear() int {
	s.mu.Lock()
	n := len(s.entries)
	s.entries = make(map[types.EventName]Entry)
	s.mu.Unlock()

	if n > 0 {
		logger.Debug("清除全部状态", "count", n)
	}
	return n
}

// Len 返回条目数量
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Names 返回已保存状态的事件名称（已排序）
func (s *Store) Names() []types.EventName {
	s.mu.RLock()
	names := make([]types.EventName, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
