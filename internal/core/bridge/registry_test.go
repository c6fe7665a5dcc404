package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aetherweave/go-portalbus/internal/core/eventbus"
	"github.com/aetherweave/go-portalbus/internal/core/stateful"
	"github.com/aetherweave/go-portalbus/internal/core/statestore"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
)

func newHandle(withState bool) *Handle {
	core := eventbus.NewBus()
	if !withState {
		return NewHandle(core, nil)
	}
	return NewHandle(core, stateful.New(core, statestore.New()))
}

// ============================================================================
// Registry 状态机测试
// ============================================================================

// TestRegistry_LookupBeforeCreate 测试创建前查找失败
func TestRegistry_LookupBeforeCreate(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, StateUnavailable, reg.State())

	h, err := reg.Lookup()
	assert.Nil(t, h)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBusNotFound))
}

// TestRegistry_Acquire 测试创建与复用
func TestRegistry_Acquire(t *testing.T) {
	reg := NewRegistry()

	calls := 0
	factory := func() pkgif.Bridge {
		calls++
		return newHandle(true)
	}

	first, created := reg.Acquire(factory)
	require.True(t, created)
	assert.Equal(t, StateAvailable, reg.State())

	second, created := reg.Acquire(factory)
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	found, err := reg.Lookup()
	require.NoError(t, err)
	assert.Same(t, first, found)
}

// TestRegistry_NilFactory 测试工厂为空或返回 nil 时保持不可用
func TestRegistry_NilFactory(t *testing.T) {
	reg := NewRegistry()

	h, created := reg.Acquire(nil)
	assert.Nil(t, h)
	assert.False(t, created)

	h, created = reg.Acquire(func() pkgif.Bridge { return nil })
	assert.Nil(t, h)
	assert.False(t, created)
	assert.Equal(t, StateUnavailable, reg.State())
}

// TestRegistry_Default 测试进程级注册表唯一
func TestRegistry_Default(t *testing.T) {
	assert.Same(t, Default(), Default())
}

// TestRegistry_SharedAcrossModules 测试两个模块共享同一句柄
func TestRegistry_SharedAcrossModules(t *testing.T) {
	reg := NewRegistry()
	reg.Acquire(func() pkgif.Bridge { return newHandle(true) })

	a, err := reg.Lookup()
	require.NoError(t, err)
	b, err := reg.Lookup()
	require.NoError(t, err)

	var got any
	b.On("user:selected", func(p any) { got = p })
	a.Emit("user:selected", 7)

	assert.Equal(t, 7, got)
}

// TestState_String 测试状态字符串
func TestState_String(t *testing.T) {
	assert.Equal(t, "unavailable", StateUnavailable.String())
	assert.Equal(t, "available", StateAvailable.String())
}

// ============================================================================
// Handle 测试
// ============================================================================

// TestHandle_Stateful 测试有状态扩展能力
func TestHandle_Stateful(t *testing.T) {
	sb, ok := newHandle(true).Stateful()
	assert.True(t, ok)
	assert.NotNil(t, sb)

	sb, ok = newHandle(false).Stateful()
	assert.False(t, ok)
	assert.Nil(t, sb)
}

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_ProvideBridge 测试 Fx 模块创建并发布句柄
func TestModule_ProvideBridge(t *testing.T) {
	reg := NewRegistry()

	var br pkgif.Bridge
	app := fxtest.New(t,
		eventbus.Module(),
		statestore.Module(),
		stateful.Module(),
		Module(),
		fx.Supply(reg),
		fx.Populate(&br),
	)
	app.RequireStart()
	defer app.RequireStop()

	found, err := reg.Lookup()
	require.NoError(t, err)
	assert.Same(t, br, found)

	_, ok := br.Stateful()
	assert.True(t, ok)
}

// TestModule_Degraded 测试未提供有状态扩展
func TestModule_Degraded(t *testing.T) {
	reg := NewRegistry()

	var br pkgif.Bridge
	app := fxtest.New(t,
		eventbus.Module(),
		Module(),
		fx.Supply(reg),
		fx.Populate(&br),
	)
	app.RequireStart()
	defer app.RequireStop()

	_, ok := br.Stateful()
	assert.False(t, ok)
}
