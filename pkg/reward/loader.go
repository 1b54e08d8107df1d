package reward

import "sync"

// CapabilityLoader 惰性能力加载器
//
// 取代旧实现里"用全局布尔标志守卫并发脚本注入"的做法：
// 所有调用方共享同一个进行中的加载，而不是各自抢占一个共享标志。
//
// 语义：
//   - 成功的加载在进程内被记忆，后续调用直接复用
//   - 进行中的加载被等待，而不是重新发起
//   - 失败的加载不被记忆，下一次调用会重试
type CapabilityLoader[T any] struct {
	load func() (T, error)

	mu       sync.Mutex
	inflight chan struct{}
	loaded   bool
	value    T
	err      error
}

// NewCapabilityLoader 创建加载器，load 在首次 Get 时才执行
func NewCapabilityLoader[T any](load func() (T, error)) *CapabilityLoader[T] {
	return &CapabilityLoader[T]{load: load}
}

// Get 返回已加载的能力；必要时触发加载或等待进行中的加载
func (l *CapabilityLoader[T]) Get() (T, error) {
	l.mu.Lock()
	for {
		if l.loaded {
			v, err := l.value, l.err
			l.mu.Unlock()
			return v, err
		}
		if l.inflight == nil {
			break
		}
		// 等待进行中的加载完成后重新检查
		wait := l.inflight
		l.mu.Unlock()
		<-wait
		l.mu.Lock()
	}

	done := make(chan struct{})
	l.inflight = done
	l.mu.Unlock()

	v, err := l.load()

	l.mu.Lock()
	l.inflight = nil
	if err == nil {
		// 只记忆成功结果，失败允许重试
		l.loaded = true
		l.value = v
	}
	l.mu.Unlock()
	close(done)

	return v, err
}

// Loaded 报告能力是否已成功加载（不触发加载）
func (l *CapabilityLoader[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}
