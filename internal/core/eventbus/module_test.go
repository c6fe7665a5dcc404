package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试 Fx 模块加载
func TestModule_Load(t *testing.T) {
	var em pkgif.Emitter
	var bus *Bus

	app := fxtest.New(t,
		Module(),
		fx.Populate(&em, &bus),
	)
	app.RequireStart()

	require.NotNil(t, em)
	assert.Same(t, bus, em)

	app.RequireStop()
}

// TestModule_Provides 测试模块提供的类型
func TestModule_Provides(t *testing.T) {
	obs := newRecordingObserver()
	result := ProvideBus(Params{Observer: obs})

	require.NotNil(t, result.Bus)
	result.Emitter.Emit("x", nil)
	assert.Equal(t, []int{0}, obs.emits["x"])
}

// TestModule_ObserverInjected 测试注入观察者
func TestModule_ObserverInjected(t *testing.T) {
	obs := newRecordingObserver()

	var em pkgif.Emitter
	app := fxtest.New(t,
		Module(),
		fx.Provide(func() pkgif.BusObserver { return obs }),
		fx.Populate(&em),
	)
	app.RequireStart()
	defer app.RequireStop()

	em.On("x", func(any) {})
	em.Emit("x", nil)

	assert.Equal(t, []int{1}, obs.emits["x"])
}

// TestModule_Lifecycle 测试停止时移除监听器
func TestModule_Lifecycle(t *testing.T) {
	var bus *Bus
	app := fx.New(
		Module(),
		fx.NopLogger,
		fx.Populate(&bus),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))

	bus.On("x", func(any) {})
	bus.OnAny(func(types.EventName, any) {})

	require.NoError(t, app.Stop(ctx))

	assert.Empty(t, bus.EventNames())
	assert.Zero(t, bus.WildcardCount())
}
