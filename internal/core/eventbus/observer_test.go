package eventbus

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/aetherweave/go-portalbus/pkg/types"
	"github.com/aetherweave/go-portalbus/tests/mocks"
)

// TestBus_ObserverCalls 验证观察者回调的参数与顺序
func TestBus_ObserverCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := mocks.NewMockBusObserver(ctrl)

	bus := NewBus(WithObserver(obs))
	bus.On(types.EventNotification, func(any) {})
	bus.On(types.EventNotification, func(any) { panic("boom") })

	gomock.InOrder(
		obs.EXPECT().OnListenerPanic(types.EventNotification, gomock.Any(), "boom"),
		obs.EXPECT().OnEmit(types.EventNotification, 2),
	)
	obs.EXPECT().OnEmit(types.EventName("user:selected"), 0)

	bus.Emit(types.EventNotification, &types.NotificationEvent{Message: "x"})
	bus.Emit("user:selected", 1)
}
