package metrics

// Stats 单个事件的统计快照
type Stats struct {
	Emits      int64 // 发射次数
	Deliveries int64 // 监听器调用次数
	Panics     int64 // 被隔离的监听器 panic 次数
}

// FanOut 平均每次发射的监听器调用数
func (s Stats) FanOut() float64 {
	if s.Emits == 0 {
		return 0
	}
	return float64(s.Deliveries) / float64(s.Emits)
}
