package types

// Payload 标准事件负载约束：PE 是 *E 且实现 Event
type Payload[E any] interface {
	*E
	Event
}

// NameOf 返回负载类型对应的事件名称
func NameOf[E any, PE Payload[E]]() EventName {
	return PE(new(E)).EventName()
}

// As 把总线上的原始负载转换为 PE
//
// 接受 *E 与 E 两种形式；nil 与 nil 指针视为零值。其他类型返回 false。
func As[E any, PE Payload[E]](raw any) (PE, bool) {
	switch v := raw.(type) {
	case nil:
		return PE(new(E)), true
	case PE:
		if v == nil {
			return PE(new(E)), true
		}
		return v, true
	case E:
		return PE(&v), true
	default:
		return nil, false
	}
}
