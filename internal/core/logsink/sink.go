// Package logsink 实现模块日志的集中接收
//
// 订阅 wc:log 与 wc:error，把模块上报的日志转写到宿主的结构化日志，
// 并保留最近的记录供诊断。令牌桶限流防止单个模块刷屏。
package logsink

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/time/rate"

	pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"
	"github.com/aetherweave/go-portalbus/pkg/lib/log"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

var logger = log.Logger("core/logsink")

// ============================================================================
// 配置
// ============================================================================

// Config 日志接收配置
type Config struct {
	// RatePerSecond 每秒接收的记录数（0 = 不限制）
	RatePerSecond float64

	// Burst 突发容量
	Burst int

	// Capacity 保留的最近记录数
	Capacity int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		RatePerSecond: 50,
		Burst:         100,
		Capacity:      256,
	}
}

// ============================================================================
// Record
// ============================================================================

// Record 一条接收到的模块日志
type Record struct {
	Time    time.Time
	Event   types.EventName
	Source  string
	Level   types.LogLevel
	Message string
	Code    string
	Meta    any
}

// Stats 接收统计
type Stats struct {
	Accepted  int64 // 已接收
	Dropped   int64 // 被限流丢弃
	Malformed int64 // 负载类型不符
}

// ============================================================================
// Sink 实现
// ============================================================================

// Sink 模块日志接收器
type Sink struct {
	limiter *rate.Limiter
	clock   clock.Clock

	mu       sync.Mutex
	records  []Record
	next     int
	full     bool
	subs     []pkgif.Subscription
	capacity int

	accepted  atomic.Int64
	dropped   atomic.Int64
	malformed atomic.Int64
}

// Option 接收器选项
type Option func(*Sink)

// WithClock 设置时钟
func WithClock(c clock.Clock) Option {
	return func(s *Sink) {
		if c != nil {
			s.clock = c
		}
	}
}

// New 创建日志接收器
func New(cfg Config, opts ...Option) *Sink {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultConfig().Capacity
	}

	s := &Sink{
		clock:    clock.New(),
		records:  make([]Record, cfg.Capacity),
		capacity: cfg.Capacity,
	}

	// 配置了速率时创建限流器
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach 订阅 wc:log 与 wc:error
//
// 重复调用先取消之前的订阅。
func (s *Sink) Attach(em pkgif.Emitter) {
	s.Detach()

	subs := []pkgif.Subscription{
		em.On(types.EventLog, s.handleLog),
		em.On(types.EventError, s.handleError),
	}

	s.mu.Lock()
	s.subs = subs
	s.mu.Unlock()
}

// Detach 取消订阅
func (s *Sink) Detach() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
}

// Attached 是否已订阅
func (s *Sink) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs) > 0
}

func (s *Sink) handleLog(payload any) {
	var evt *types.LogEvent
	switch p := payload.(type) {
	case *types.LogEvent:
		evt = p
	case types.LogEvent:
		evt = &p
	}
	if evt == nil {
		s.malformed.Add(1)
		logger.Warn("wc:log 负载类型不符", "type", typeName(payload))
		return
	}

	s.accept(Record{
		Event:   types.EventLog,
		Source:  evt.Source,
		Level:   evt.Level,
		Message: evt.Message,
		Meta:    evt.Meta,
	})
}

func (s *Sink) handleError(payload any) {
	var evt *types.ErrorEvent
	switch p := payload.(type) {
	case *types.ErrorEvent:
		evt = p
	case types.ErrorEvent:
		evt = &p
	}
	if evt == nil {
		s.malformed.Add(1)
		logger.Warn("wc:error 负载类型不符", "type", typeName(payload))
		return
	}

	s.accept(Record{
		Event:   types.EventError,
		Source:  evt.Source,
		Level:   types.LogLevelError,
		Message: evt.Message,
		Code:    evt.Code,
	})
}

func (s *Sink) accept(r Record) {
	if s.limiter != nil && !s.limiter.Allow() {
		// 只在第一次丢弃时告警
		if s.dropped.Add(1) == 1 {
			logger.Warn("模块日志超出速率限制，开始丢弃", "source", r.Source)
		}
		return
	}
	s.accepted.Add(1)

	r.Time = s.clock.Now()

	s.mu.Lock()
	s.records[s.next] = r
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
	s.mu.Unlock()

	args := []any{"source", r.Source}
	if r.Code != "" {
		args = append(args, "code", r.Code)
	}
	if r.Meta != nil {
		args = append(args, "meta", r.Meta)
	}
	logger.Log(context.Background(), levelOf(r.Level), r.Message, args...)
}

// Recent 返回最近的记录（按时间先后）
func (s *Sink) Recent() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.full {
		out := make([]Record, s.next)
		copy(out, s.records[:s.next])
		return out
	}

	out := make([]Record, 0, s.capacity)
	out = append(out, s.records[s.next:]...)
	out = append(out, s.records[:s.next]...)
	return out
}

// Stats 返回接收统计
func (s *Sink) Stats() Stats {
	return Stats{
		Accepted:  s.accepted.Load(),
		Dropped:   s.dropped.Load(),
		Malformed: s.malformed.Load(),
	}
}

func levelOf(l types.LogLevel) slog.Level {
	switch l {
	case types.LogLevelError:
		return slog.LevelError
	case types.LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
