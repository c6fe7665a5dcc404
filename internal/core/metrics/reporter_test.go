package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherweave/go-portalbus/internal/core/eventbus"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// TestReporter_ImplementsObserver 验证 Reporter 实现接口
func TestReporter_ImplementsObserver(t *testing.T) {
	var _ pkgif.BusObserver = (*Reporter)(nil)
}

// TestReporter_Counts 测试发射与 panic 计数
func TestReporter_Counts(t *testing.T) {
	r := NewReporter("")
	bus := eventbus.NewBus(eventbus.WithObserver(r))

	bus.On(types.EventNotification, func(any) {})
	bus.On(types.EventNotification, func(any) { panic("boom") })

	bus.Emit(types.EventNotification, &types.NotificationEvent{Message: "hi"})
	bus.Emit(types.EventNotification, &types.NotificationEvent{Message: "again"})
	bus.Emit(types.EventNavigate, &types.NavigateEvent{Path: "/"})

	label := types.EventNotification.String()
	assert.Equal(t, 2.0, testutil.ToFloat64(r.emits.WithLabelValues(label)))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.deliveries.WithLabelValues(label)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.panics.WithLabelValues(label)))

	s := r.Stats(types.EventNotification)
	assert.Equal(t, Stats{Emits: 2, Deliveries: 4, Panics: 2}, s)
	assert.Equal(t, 2.0, s.FanOut())

	assert.Equal(t, Stats{Emits: 1}, r.Stats(types.EventNavigate))
	assert.Equal(t, Stats{Emits: 3, Deliveries: 4, Panics: 2}, r.Totals())
	assert.Equal(t, []types.EventName{types.EventNavigate, types.EventNotification}, r.Events())
}

// TestReporter_UnknownEvent 测试未观察到的事件
func TestReporter_UnknownEvent(t *testing.T) {
	r := NewReporter("test")

	assert.Equal(t, Stats{}, r.Stats("nothing"))
	assert.Zero(t, r.Stats("nothing").FanOut())
	assert.Empty(t, r.StatsByEvent())
}

// TestReporter_TrackState 测试状态条目指标
func TestReporter_TrackState(t *testing.T) {
	r := NewReporter("test")

	n := 3
	require.NoError(t, r.TrackState("test", func() int { return n }))

	count, err := testutil.GatherAndCount(r.Registry(), "test_state_entries")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// 重复注册失败
	assert.Error(t, r.TrackState("test", func() int { return n }))
}
