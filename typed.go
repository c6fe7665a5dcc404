package portalbus

import (
	"fmt"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型化辅助函数
// ════════════════════════════════════════════════════════════════════════════
//
// 事件名称由负载类型推导：
//
//	portalbus.Publish(bus, &types.NavigateEvent{Path: "/users"})
//	portalbus.Subscribe(bus, func(e *types.NavigateEvent) { ... })
//
// 订阅端接受 *E 与 E 两种形式的负载，nil 负载视为零值。
// 其他类型的负载被记录后跳过，不会 panic。

// EventOf 返回负载类型对应的事件名称
func EventOf[E any, PE types.Payload[E]]() types.EventName {
	return types.NameOf[E, PE]()
}

// Publish 发射类型化事件
func Publish[E any, PE types.Payload[E]](em pkgif.Emitter, payload PE) {
	if payload == nil {
		payload = PE(new(E))
	}
	em.Emit(EventOf[E, PE](), payload)
}

// Subscribe 订阅类型化事件
func Subscribe[E any, PE types.Payload[E]](em pkgif.Emitter, fn func(PE)) pkgif.Subscription {
	name := EventOf[E, PE]()
	return em.On(name, typedListener[E, PE](name, fn))
}

// PublishStateful 有状态发射类型化事件
func PublishStateful[E any, PE types.Payload[E]](sb pkgif.StatefulBus, payload PE) {
	if payload == nil {
		payload = PE(new(E))
	}
	sb.EmitStateful(EventOf[E, PE](), payload)
}

// SubscribeStateful 有状态订阅类型化事件（晚加入者立即收到最新值）
func SubscribeStateful[E any, PE types.Payload[E]](sb pkgif.StatefulBus, fn func(PE)) pkgif.Subscription {
	name := EventOf[E, PE]()
	return sb.OnStateful(name, typedListener[E, PE](name, fn))
}

// State 返回类型化的当前状态
func State[E any, PE types.Payload[E]](sb pkgif.StatefulBus) (PE, bool) {
	raw, ok := sb.GetState(EventOf[E, PE]())
	if !ok {
		return nil, false
	}
	return types.As[E, PE](raw)
}

func typedListener[E any, PE types.Payload[E]](name types.EventName, fn func(PE)) pkgif.Listener {
	return func(raw any) {
		v, ok := types.As[E, PE](raw)
		if !ok {
			logger.Warn("负载类型不符，跳过",
				"event", name,
				"want", typeName(PE(nil)),
				"got", typeName(raw))
			return
		}
		fn(v)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
