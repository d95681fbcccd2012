package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"exam-portal/web/internal/model"
	apperrors "exam-portal/web/pkg/errors"
)

func TestRegistry_RestoresIdentity(t *testing.T) {
	deps, _ := newTestDeps(t)
	_ = deps.Store.Save(context.Background(), "sid-9", &model.Identity{Token: "tok"})
	r := NewRegistry(deps, time.Minute)

	a := r.Get(context.Background(), "sid-9")
	if id := a.Identity(); id == nil || id.Token != "tok" {
		t.Fatalf("应从存储恢复身份，实际=%+v", id)
	}
	if r.Get(context.Background(), "sid-9") != a {
		t.Error("同一会话应返回同一外壳")
	}
	if r.Get(context.Background(), "sid-new").Identity() != nil {
		t.Error("新会话不应有身份")
	}
}

func TestRegistry_Sweep(t *testing.T) {
	deps, _ := newTestDeps(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deps.Now = func() time.Time { return now }
	r := NewRegistry(deps, 30*time.Minute)

	r.Get(context.Background(), "old")
	now = now.Add(20 * time.Minute)
	r.Get(context.Background(), "fresh")

	if n := r.Sweep(now.Add(15 * time.Minute)); n != 1 {
		t.Errorf("期望回收 1 个，实际=%d", n)
	}
	if r.Len() != 1 {
		t.Errorf("期望剩余 1 个，实际=%d", r.Len())
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	s := NewMemoryStore(testSessionConfig())
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.Save(context.Background(), "short", &model.Identity{})
	_ = s.Save(context.Background(), "long", &model.Identity{AllDay: true})

	now = now.Add(3 * time.Hour)
	if _, err := s.Load(context.Background(), "short"); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Errorf("默认会话应已过期，实际: %v", err)
	}
	if _, err := s.Load(context.Background(), "long"); err != nil {
		t.Errorf("all-day 会话应仍有效，实际: %v", err)
	}
}
