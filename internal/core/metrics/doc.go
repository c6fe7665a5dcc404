// Package metrics 提供总线监控指标
//
// Reporter 实现 pkgif.BusObserver，基于 prometheus client_golang 记录：
//   - portalbus_bus_emits_total{event}：发射次数
//   - portalbus_bus_deliveries_total{event}：监听器调用次数
//   - portalbus_bus_listener_panics_total{event}：被隔离的 panic 次数
//   - portalbus_state_entries：有状态条目数量（GaugeFunc）
//
// 同时保留按事件名称的内存统计快照，便于 CLI 与测试读取。
//
// # 快速开始
//
//	r := metrics.NewReporter("portalbus")
//	bus := eventbus.NewBus(eventbus.WithObserver(r))
//
//	bus.Emit(types.EventNavigate, &types.NavigateEvent{Path: "/users"})
//
//	s := r.Stats(types.EventNavigate)
//	fmt.Println(s.Emits, s.Deliveries)
//
//	http.Handle("/metrics", promhttp.HandlerFor(r.Registry(), promhttp.HandlerOpts{}))
package metrics
