package app

import (
	"context"
	"net/url"
	"sync"
)

// Navigation 页面或事件处理器发出的跳转
type Navigation struct {
	Path    string
	Replace bool
}

type sinkKey struct{}

// sink 收集一次请求中发出的跳转，以最后一次为准
type sink struct {
	mu  sync.Mutex
	nav *Navigation
}

func withSink(ctx context.Context) (context.Context, *sink) {
	s := &sink{}
	return context.WithValue(ctx, sinkKey{}, s), s
}

func (s *sink) set(n *Navigation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = n
}

func (s *sink) take() *Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.nav
	s.nav = nil
	return n
}

// navigator 绑定到页面路由的跳转器，相对路径以该路由解析
type navigator struct {
	base string
}

func (n navigator) NavigateTo(ctx context.Context, path string) {
	n.emit(ctx, path, false)
}

func (n navigator) RedirectTo(ctx context.Context, path string) {
	n.emit(ctx, path, true)
}

func (n navigator) emit(ctx context.Context, path string, replace bool) {
	s, ok := ctx.Value(sinkKey{}).(*sink)
	if !ok {
		return
	}
	s.set(&Navigation{Path: Resolve(n.base, path), Replace: replace})
}

// Resolve 以 base 解析相对路径，结果只保留站内路径
func Resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return "/"
	}
	r, err := url.Parse(ref)
	if err != nil || r.Scheme != "" || r.Host != "" || r.User != nil {
		return b.Path
	}
	resolved := b.ResolveReference(r)
	if resolved.Path == "" {
		return "/"
	}
	return resolved.Path
}
