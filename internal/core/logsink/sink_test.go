package logsink

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aetherweave/go-portalbus/config"
	"github.com/aetherweave/go-portalbus/internal/core/bridge"
	"github.com/aetherweave/go-portalbus/internal/core/eventbus"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// TestSink_ReceivesLogsAndErrors 测试接收 wc:log 与 wc:error
func TestSink_ReceivesLogsAndErrors(t *testing.T) {
	mock := clock.NewMock()
	bus := eventbus.NewBus()
	s := New(Config{Capacity: 8}, WithClock(mock))
	s.Attach(bus)

	bus.Emit(types.EventLog, &types.LogEvent{Message: "loaded", Level: types.LogLevelInfo, Source: "users", Meta: map[string]any{"n": 1}})
	mock.Add(time.Second)
	bus.Emit(types.EventError, &types.ErrorEvent{Message: "boom", Code: "E1", Source: "users"})

	recs := s.Recent()
	require.Len(t, recs, 2)
	assert.Equal(t, "loaded", recs[0].Message)
	assert.Equal(t, types.EventLog, recs[0].Event)
	assert.Equal(t, types.LogLevelError, recs[1].Level)
	assert.Equal(t, "E1", recs[1].Code)
	assert.True(t, recs[1].Time.After(recs[0].Time))
	assert.Equal(t, Stats{Accepted: 2}, s.Stats())
}

// TestSink_Malformed 测试负载类型不符
func TestSink_Malformed(t *testing.T) {
	bus := eventbus.NewBus()
	s := New(Config{})
	s.Attach(bus)

	bus.Emit(types.EventLog, "not a log")
	bus.Emit(types.EventError, nil)
	bus.Emit(types.EventLog, types.LogEvent{Message: "by value"})

	assert.Equal(t, Stats{Accepted: 1, Malformed: 2}, s.Stats())
}

// TestSink_RateLimit 测试限流
func TestSink_RateLimit(t *testing.T) {
	bus := eventbus.NewBus()
	s := New(Config{RatePerSecond: 0.001, Burst: 2})
	s.Attach(bus)

	for i := 0; i < 5; i++ {
		bus.Emit(types.EventLog, &types.LogEvent{Message: "spam"})
	}

	st := s.Stats()
	assert.Equal(t, int64(2), st.Accepted)
	assert.Equal(t, int64(3), st.Dropped)
}

// TestSink_RingBuffer 测试只保留最近的记录
func TestSink_RingBuffer(t *testing.T) {
	bus := eventbus.NewBus()
	s := New(Config{Capacity: 2})
	s.Attach(bus)

	for _, m := range []string{"a", "b", "c"} {
		bus.Emit(types.EventLog, &types.LogEvent{Message: m})
	}

	recs := s.Recent()
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].Message)
	assert.Equal(t, "c", recs[1].Message)
}

// TestSink_Detach 测试取消订阅
func TestSink_Detach(t *testing.T) {
	bus := eventbus.NewBus()
	s := New(Config{})
	s.Attach(bus)
	s.Attach(bus)
	assert.Equal(t, 1, bus.ListenerCount(types.EventLog))

	s.Detach()
	assert.False(t, s.Attached())
	assert.Zero(t, bus.ListenerCount(types.EventLog))
	assert.Zero(t, bus.ListenerCount(types.EventError))
}

// TestModule_Lifecycle 测试随应用启动/停止订阅
func TestModule_Lifecycle(t *testing.T) {
	core := eventbus.NewBus()
	br := bridge.NewHandle(core, nil)

	cfg := config.NewConfig()
	cfg.LogSink.Enabled = true

	var s *Sink
	app := fxtest.New(t,
		Module(),
		fx.Supply(cfg),
		fx.Provide(func() pkgif.Bridge { return br }),
		fx.Populate(&s),
	)
	app.RequireStart()
	require.NotNil(t, s)
	assert.True(t, s.Attached())

	app.RequireStop()
	assert.False(t, s.Attached())
}

// TestModule_Disabled 测试禁用
func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.LogSink.Enabled = false

	var s *Sink
	app := fxtest.New(t,
		Module(),
		fx.Supply(cfg),
		fx.Provide(func() pkgif.Bridge { return bridge.NewHandle(eventbus.NewBus(), nil) }),
		fx.Populate(&s),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Nil(t, s)
}
