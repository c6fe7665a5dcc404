package eventbus

import pkgif "github.com/aetherweave/go-portalbus/pkg/interfaces"

// Option 总线选项
type Option func(*busSettings)

type busSettings struct {
	observer pkgif.BusObserver
}

// WithObserver 设置总线观察者
//
// nil 观察者被忽略。
func WithObserver(o pkgif.BusObserver) Option {
	return func(s *busSettings) {
		if o != nil {
			s.observer = o
		}
	}
}
