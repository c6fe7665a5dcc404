package portalbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherweave/go-portalbus/internal/core/eventbus"
	"github.com/aetherweave/go-portalbus/internal/core/stateful"
	"github.com/aetherweave/go-portalbus/internal/core/statestore"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

func TestEventOf(t *testing.T) {
	assert.Equal(t, types.EventNavigate, EventOf[types.NavigateEvent]())
	assert.Equal(t, types.EventAuthLogout, EventOf[types.LogoutEvent]())
}

func TestSubscribe_AcceptsPointerAndValue(t *testing.T) {
	bus := eventbus.NewBus()

	var paths []string
	Subscribe(bus, func(e *types.NavigateEvent) { paths = append(paths, e.Path) })

	bus.Emit(types.EventNavigate, &types.NavigateEvent{Path: "/ptr"})
	bus.Emit(types.EventNavigate, types.NavigateEvent{Path: "/val"})
	bus.Emit(types.EventNavigate, nil)

	assert.Equal(t, []string{"/ptr", "/val", ""}, paths)
}

func TestSubscribe_WrongTypeSkipped(t *testing.T) {
	bus := eventbus.NewBus()

	var calls int
	Subscribe(bus, func(*types.NavigateEvent) { calls++ })

	assert.NotPanics(t, func() {
		bus.Emit(types.EventNavigate, "/not-a-struct")
	})
	assert.Equal(t, 0, calls)
}

func TestPublish_NilBecomesZero(t *testing.T) {
	bus := eventbus.NewBus()

	var got any
	bus.On(types.EventPortalReady, func(p any) { got = p })

	Publish[types.ReadyEvent](bus, nil)
	require.IsType(t, &types.ReadyEvent{}, got)
}

func TestStatefulHelpers(t *testing.T) {
	bus := eventbus.NewBus()
	sb := stateful.New(bus, statestore.New())

	_, ok := State[types.PageNavigationEvent](sb)
	assert.False(t, ok)

	nav := &types.PageNavigationEvent{
		BaseRoute: "/users",
		Items:     []types.NavigationItem{{Label: "List", Path: "/users"}},
	}
	PublishStateful(sb, nav)

	var replayed *types.PageNavigationEvent
	sub := SubscribeStateful(sb, func(e *types.PageNavigationEvent) { replayed = e })
	assert.Same(t, nav, replayed)
	assert.True(t, sub.Active())

	current, ok := State[types.PageNavigationEvent](sb)
	require.True(t, ok)
	assert.Same(t, nav, current)

	// 错误类型的负载不会被解码
	sb.EmitStateful(types.EventPageNavigationRegister, 3)
	_, ok = State[types.PageNavigationEvent](sb)
	assert.False(t, ok)
}
