package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry 会话 ID → 应用外壳；长时间无访问的外壳被回收，身份仍保存在会话存储中
type Registry struct {
	deps *Deps
	idle time.Duration

	mu   sync.Mutex
	apps map[string]*App
}

// NewRegistry 创建会话注册表
func NewRegistry(deps *Deps, idle time.Duration) *Registry {
	return &Registry{
		deps: deps,
		idle: idle,
		apps: make(map[string]*App),
	}
}

// Get 取出会话外壳，不存在时创建并从会话存储恢复身份
func (r *Registry) Get(ctx context.Context, sid string) *App {
	r.mu.Lock()
	a, ok := r.apps[sid]
	if !ok {
		a = New(sid, r.deps)
		r.apps[sid] = a
	}
	r.mu.Unlock()

	a.restored.Do(func() { a.restore(ctx) })
	return a
}

// Remove 移除会话外壳
func (r *Registry) Remove(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.apps, sid)
}

// Len 当前内存中的会话数
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

// Sweep 回收空闲超过 idle 的外壳，返回回收数量
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for sid, a := range r.apps {
		if now.Sub(a.idleSince()) >= r.idle {
			delete(r.apps, sid)
			n++
		}
	}
	return n
}

// Run 周期性回收空闲外壳，直到 ctx 结束
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.deps.now()); n > 0 {
				r.deps.Logger.Debug("回收空闲会话", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}
