package portalbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/aetherweave/go-portalbus/config"
	"github.com/aetherweave/go-portalbus/internal/core/lifecycle"
	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// startPortal 在独立注册表上启动门户
func startPortal(t *testing.T, opts ...Option) *Portal {
	t.Helper()

	opts = append([]Option{WithRegistry(NewRegistry())}, opts...)
	p, err := Start(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// ============================================================================
//                              生命周期
// ============================================================================

func TestPortal_StateTransitions(t *testing.T) {
	p, err := New(WithRegistry(NewRegistry()))
	require.NoError(t, err)
	assert.Equal(t, StateIdle, p.State())
	assert.ErrorIs(t, p.PublishReady(), ErrNotStarted)
	assert.ErrorIs(t, p.Stop(context.Background()), ErrNotStarted)

	require.NoError(t, p.Start(context.Background()))
	assert.True(t, p.IsRunning())
	assert.ErrorIs(t, p.Start(context.Background()), ErrAlreadyStarted)

	require.NoError(t, p.Close())
	assert.Equal(t, StateStopped, p.State())
	assert.NoError(t, p.Close())

	assert.ErrorIs(t, p.Start(context.Background()), ErrPortalClosed)
	assert.ErrorIs(t, p.PublishLocale("de"), ErrPortalClosed)
}

func TestPortalState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "unknown(42)", PortalState(42).String())
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(WithConfig(nil))
	assert.Error(t, err)

	_, err = New(WithRegistry(nil))
	assert.Error(t, err)

	_, err = New(WithPreset("turbo"))
	assert.Error(t, err)

	cfg := config.NewConfig()
	cfg.Log.Level = "loud"
	_, err = New(WithConfig(cfg))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// ============================================================================
//                              全局访问点
// ============================================================================

func TestPortal_PublishesBusAtNew(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Lookup()
	assert.True(t, errors.Is(err, ErrBusNotFound))

	p, err := New(WithRegistry(reg))
	require.NoError(t, err)
	defer p.Close()

	found, err := reg.Lookup()
	require.NoError(t, err)
	assert.Same(t, p.Bus(), found)
	assert.Same(t, reg, p.Registry())
}

func TestPortal_SecondPortalReusesBus(t *testing.T) {
	reg := NewRegistry()
	first := startPortal(t, WithRegistry(reg))
	second := startPortal(t, WithRegistry(reg))

	assert.Same(t, first.Bus(), second.Bus())
}

func TestPortal_IsolatedConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Bridge.Isolated = true

	p, err := Start(context.Background(), WithConfig(cfg))
	require.NoError(t, err)
	defer p.Close()

	assert.NotSame(t, DefaultRegistry(), p.Registry())
}

// ============================================================================
//                              有状态场景
// ============================================================================

type theme struct {
	Theme  string
	IsDark bool
}

func TestPortal_LateJoinerReceivesTheme(t *testing.T) {
	p := startPortal(t)
	sb, ok := p.Stateful()
	require.True(t, ok)

	published := &theme{Theme: "dark", IsDark: true}
	sb.EmitStateful("theme:changed", published)

	var got []any
	sb.OnStateful("theme:changed", func(payload any) {
		got = append(got, payload)
	})

	require.Len(t, got, 1)
	assert.Same(t, published, got[0])
}

func TestPortal_LastWriteWins(t *testing.T) {
	p := startPortal(t)
	sb, _ := p.Stateful()

	sb.EmitStateful("x", 1)
	sb.EmitStateful("x", 2)

	v, ok := sb.GetState("x")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestPortal_NotificationOrder(t *testing.T) {
	p := startPortal(t)

	var order []string
	p.OnNotification(func(e *types.NotificationEvent) { order = append(order, "L1:"+e.Message) })
	p.OnNotification(func(e *types.NotificationEvent) { order = append(order, "L2:"+e.Message) })

	p.Bus().Emit(types.EventNotification, &types.NotificationEvent{Message: "x", Type: types.NotificationInfo})

	assert.Equal(t, []string{"L1:x", "L2:x"}, order)
}

func TestPortal_LogoutClearsState(t *testing.T) {
	p := startPortal(t)
	sb, _ := p.Stateful()
	sb.EmitStateful("user:selected", map[string]any{"id": 7})

	// 登出监听器运行时状态仍然存在
	var sawState bool
	p.Bus().On(types.EventAuthLogout, func(any) {
		sawState = sb.HasState("user:selected")
	})

	require.NoError(t, p.PublishLogout(context.Background()))

	assert.True(t, sawState)
	assert.False(t, sb.HasState("user:selected"))
	assert.Equal(t, lifecycle.PhaseAnonymous, p.Lifecycle().Phase())

	// 登出信号不重放
	var replayed bool
	sb.OnStateful(types.EventAuthLogout, func(any) { replayed = true })
	assert.False(t, replayed)
}

func TestPortal_TokenRefreshed(t *testing.T) {
	p := startPortal(t)

	var got *types.TokenRefreshedEvent
	Subscribe(p.Bus(), func(e *types.TokenRefreshedEvent) { got = e })

	user := types.UserClaims{Username: "ada", Roles: []string{"admin"}}
	require.NoError(t, p.PublishTokenRefreshed(context.Background(), "tok", user))

	require.NotNil(t, got)
	assert.Equal(t, "tok", got.Token)
	assert.True(t, got.User.HasRole("admin"))
	assert.Equal(t, lifecycle.PhaseAuthenticated, p.Lifecycle().Phase())
}

func TestPortal_PageTitleReplayedToHost(t *testing.T) {
	p := startPortal(t)
	sb, _ := p.Stateful()

	// 模块先于宿主标题栏设置标题
	PublishStateful(sb, &types.PageTitleEvent{Title: "Users"})

	var title string
	p.OnPageTitle(func(e *types.PageTitleEvent) { title = e.Title })
	assert.Equal(t, "Users", title)
}

// ============================================================================
//                              降级模式
// ============================================================================

func TestPortal_Degraded(t *testing.T) {
	p := startPortal(t, WithStateful(false))

	_, ok := p.Stateful()
	assert.False(t, ok)

	// 标题监听退化为普通订阅：只收到之后的事件
	var titles []string
	p.OnPageTitle(func(e *types.PageTitleEvent) { titles = append(titles, e.Title) })
	Publish(p.Bus(), &types.PageTitleEvent{Title: "Roles"})
	assert.Equal(t, []string{"Roles"}, titles)

	assert.NoError(t, p.PublishLogout(context.Background()))
}

// ============================================================================
//                              监听器与过滤
// ============================================================================

func TestPortal_PrefixFilters(t *testing.T) {
	p := startPortal(t)

	var portal, module []types.EventName
	p.OnAllPortalEvents(func(name types.EventName, _ any) { portal = append(portal, name) })
	p.OnAllModuleEvents(func(name types.EventName, _ any) { module = append(module, name) })

	require.NoError(t, p.PublishLocale("fr"))
	require.NoError(t, p.PublishReady())
	Publish(p.Bus(), &types.NavigateEvent{Path: "/users"})
	p.Bus().Emit("user:selected", 1)

	assert.Equal(t, []types.EventName{types.EventLocaleChange, types.EventPortalReady}, portal)
	assert.Equal(t, []types.EventName{types.EventNavigate}, module)
}

func TestPortal_ModuleListeners(t *testing.T) {
	p := startPortal(t)

	var path string
	var errMsg string
	var cleared int
	sub := p.OnNavigate(func(e *types.NavigateEvent) { path = e.Path })
	p.OnError(func(e *types.ErrorEvent) { errMsg = e.Message })
	p.OnNavigationClear(func() { cleared++ })

	Publish(p.Bus(), &types.NavigateEvent{Path: "/a"})
	Publish(p.Bus(), &types.ErrorEvent{Message: "boom"})
	Publish[types.ClearNavigationEvent](p.Bus(), nil)
	assert.Equal(t, "/a", path)
	assert.Equal(t, "boom", errMsg)
	assert.Equal(t, 1, cleared)

	assert.Equal(t, 1, p.ListenerCount(types.EventNavigate))
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	assert.Equal(t, 0, p.ListenerCount(types.EventNavigate))

	p.RemoveAllListeners()
	assert.Equal(t, 0, p.ListenerCount(types.EventError))
}

// ============================================================================
//                              指标与日志接收
// ============================================================================

func TestPortal_MetricsAndLogs(t *testing.T) {
	p := startPortal(t)
	require.NotNil(t, p.Metrics())

	var logs int
	p.OnLog(func(*types.LogEvent) { logs++ })
	Publish(p.Bus(), &types.LogEvent{Message: "loaded", Level: types.LogLevelInfo, Source: "users"})

	assert.Equal(t, 1, logs)
	assert.Equal(t, int64(1), p.Stats(types.EventLog).Emits)

	recent := p.RecentLogs()
	require.Len(t, recent, 1)
	assert.Equal(t, "users", recent[0].Source)
}

func TestPortal_MinimalPreset(t *testing.T) {
	p := startPortal(t, WithPreset("minimal"))

	assert.Nil(t, p.Metrics())
	assert.Nil(t, p.RecentLogs())
	assert.Equal(t, int64(0), p.Stats(types.EventLog).Emits)
}

func TestPortal_FxOptions(t *testing.T) {
	var coordinator *lifecycle.Coordinator
	var bridge pkgif.Bridge

	p := startPortal(t, WithFxOptions(fx.Populate(&coordinator, &bridge)))

	assert.Same(t, p.Lifecycle(), coordinator)
	assert.Same(t, p.Bus(), bridge)
}

func TestPortal_StopClearsState(t *testing.T) {
	p := startPortal(t)
	sb, _ := p.Stateful()
	sb.EmitStateful("x", 1)

	require.NoError(t, p.Stop(context.Background()))
	assert.False(t, sb.HasState("x"))
}

func TestVersionInfo(t *testing.T) {
	assert.Contains(t, VersionInfo(), Version)
}
