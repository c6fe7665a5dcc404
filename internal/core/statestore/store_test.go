package statestore

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aetherweave/go-portalbus/pkg/types"
)

// ============================================================================
// 基础功能测试
// ============================================================================

// TestStore_SetGet 测试写入和读取
func TestStore_SetGet(t *testing.T) {
	mock := clock.NewMock()
	s := New(WithClock(mock))

	_, ok := s.Get("theme:changed")
	assert.False(t, ok)

	e := s.Set("theme:changed", "dark")
	assert.Equal(t, "dark", e.Data)
	assert.Equal(t, mock.Now(), e.Timestamp)
	assert.Equal(t, uint64(1), e.Version)

	got, ok := s.Get("theme:changed")
	require.True(t, ok)
	assert.Equal(t, e, got)
}

// TestStore_LastWriteWins 测试后写覆盖先写
func TestStore_LastWriteWins(t *testing.T) {
	mock := clock.NewMock()
	s := New(WithClock(mock))

	first := s.Set("x", 1)
	mock.Add(time.Second)
	second := s.Set("x", 2)

	got, _ := s.Get("x")
	assert.Equal(t, 2, got.Data)
	assert.Greater(t, second.Version, first.Version)
	assert.True(t, second.Timestamp.After(first.Timestamp))
	assert.Equal(t, 1, s.Len())
}

// TestStore_ClockBackwards 测试时钟回拨时时间戳不倒退
func TestStore_ClockBackwards(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s := New(WithClock(mock))

	first := s.Set("x", 1)
	mock.Set(time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC))
	second := s.Set("x", 2)

	assert.False(t, second.Timestamp.Before(first.Timestamp))
}

// TestStore_PayloadByReference 测试负载按引用保存
func TestStore_PayloadByReference(t *testing.T) {
	s := New()

	nav := &types.PageNavigationEvent{BaseRoute: "/admin"}
	s.Set(types.EventPageNavigationRegister, nav)

	got, _ := s.Get(types.EventPageNavigationRegister)
	assert.Same(t, nav, got.Data)
}

// TestStore_NilPayload 测试 nil 负载同样是有效状态
func TestStore_NilPayload(t *testing.T) {
	s := New()

	s.Set("x", nil)

	assert.True(t, s.Has("x"))
}

// ============================================================================
// 清理测试
// ============================================================================

// TestStore_Delete 测试删除
func TestStore_Delete(t *testing.T) {
	s := New()
	s.Set("a", 1)

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	assert.False(t, s.Has("a"))
}

// TestStore_Clear 测试清除全部
func TestStore_Clear(t *testing.T) {
	s := New()
	s.Set("b", 1)
	s.Set("a", 2)

	assert.Equal(t, []types.EventName{"a", "b"}, s.Names())
	assert.Equal(t, 2, s.Clear())
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Clear())
	assert.Empty(t, s.Names())
}

// TestStore_Concurrent 测试并发读写
func TestStore_Concurrent(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set("x", i*100+j)
				_, _ = s.Get("x")
				_ = s.Names()
			}
		}(i)
	}
	wg.Wait()

	e, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, uint64(1000), e.Version)
}

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_InjectedClock 测试注入时钟
func TestModule_InjectedClock(t *testing.T) {
	mock := clock.NewMock()

	var s *Store
	app := fxtest.New(t,
		Module(),
		fx.Provide(func() clock.Clock { return mock }),
		fx.Populate(&s),
	)
	app.RequireStart()
	defer app.RequireStop()

	e := s.Set("x", 1)
	assert.Equal(t, mock.Now(), e.Timestamp)
}
