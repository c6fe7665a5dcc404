package metrics

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/lib/log"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

var logger = log.Logger("core/metrics")

// DefaultNamespace 默认指标命名空间
const DefaultNamespace = "portalbus"

// ============================================================================
// Reporter 实现
// ============================================================================

// Reporter 总线指标记录器
//
// 实现 pkgif.BusObserver，挂到 Emitter Core 上记录每次发射与监听器 panic。
// 指标注册在独立的 prometheus.Registry 上，不污染全局默认注册表。
type Reporter struct {
	registry *prometheus.Registry

	emits      *prometheus.CounterVec
	deliveries *prometheus.CounterVec
	panics     *prometheus.CounterVec

	mu      sync.RWMutex
	byEvent map[types.EventName]*eventCounter
}

type eventCounter struct {
	emits      atomic.Int64
	deliveries atomic.Int64
	panics     atomic.Int64
}

var _ pkgif.BusObserver = (*Reporter)(nil)

// NewReporter 创建指标记录器
func NewReporter(namespace string) *Reporter {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &Reporter{
		registry: prometheus.NewRegistry(),
		emits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bus",
			Name:      "emits_total",
			Help:      "Number of emits per event name.",
		}, []string{"event"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bus",
			Name:      "deliveries_total",
			Help:      "Number of listener invocations per event name.",
		}, []string{"event"}),
		panics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bus",
			Name:      "listener_panics_total",
			Help:      "Number of recovered listener panics per event name.",
		}, []string{"event"}),
		byEvent: make(map[types.EventName]*eventCounter),
	}

	r.registry.MustRegister(r.emits, r.deliveries, r.panics)
	return r
}

// Registry 返回指标注册表（供 promhttp 暴露）
func (r *Reporter) Registry() *prometheus.Registry {
	return r.registry
}

// OnEmit 实现 pkgif.BusObserver
func (r *Reporter) OnEmit(name types.EventName, delivered int) {
	label := name.String()
	r.emits.WithLabelValues(label).Inc()
	r.deliveries.WithLabelValues(label).Add(float64(delivered))

	c := r.counter(name)
	c.emits.Add(1)
	c.deliveries.Add(int64(delivered))
}

// OnListenerPanic 实现 pkgif.BusObserver
func (r *Reporter) OnListenerPanic(name types.EventName, subscriptionID string, _ any) {
	r.panics.WithLabelValues(name.String()).Inc()
	r.counter(name).panics.Add(1)

	logger.Debug("记录监听器 panic", "event", name, "subscription", subscriptionID)
}

// TrackState 注册状态条目数量指标
//
// 同一 Reporter 上只能调用一次。
func (r *Reporter) TrackState(namespace string, count func() int) error {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "state",
		Name:      "entries",
		Help:      "Number of event names with stored state.",
	}, func() float64 { return float64(count()) })
	return r.registry.Register(g)
}

func (r *Reporter) counter(name types.EventName) *eventCounter {
	r.mu.RLock()
	c, ok := r.byEvent[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.byEvent[name]; !ok {
		c = &eventCounter{}
		r.byEvent[name] = c
	}
	return c
}

// ============================================================================
// 统计快照
// ============================================================================

// Stats 返回单个事件的统计
func (r *Reporter) Stats(name types.EventName) Stats {
	r.mu.RLock()
	c, ok := r.byEvent[name]
	r.mu.RUnlock()
	if !ok {
		return Stats{}
	}
	return c.snapshot()
}

// Totals 返回全部事件的汇总统计
func (r *Reporter) Totals() Stats {
	var total Stats
	for _, s := range r.StatsByEvent() {
		total.Emits += s.Emits
		total.Deliveries += s.Deliveries
		total.Panics += s.Panics
	}
	return total
}

// StatsByEvent 返回按事件名称的统计
func (r *Reporter) StatsByEvent() map[types.EventName]Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[types.EventName]Stats, len(r.byEvent))
	for name, c := range r.byEvent {
		out[name] = c.snapshot()
	}
	return out
}

// Events 返回已观察到的事件名称（已排序）
func (r *Reporter) Events() []types.EventName {
	r.mu.RLock()
	names := make([]types.EventName, 0, len(r.byEvent))
	for name := range r.byEvent {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (c *eventCounter) snapshot() Stats {
	return Stats{
		Emits:      c.emits.Load(),
		Deliveries: c.deliveries.Load(),
		Panics:     c.panics.Load(),
	}
}
