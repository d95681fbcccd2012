package app

import (
	"context"
	"sync"
	"time"

	"exam-portal/web/config"
	"exam-portal/web/internal/model"
	apperrors "exam-portal/web/pkg/errors"
	"exam-portal/web/pkg/redis"
)

// SessionStore 会话身份的持久化存储；有效期由身份的 AllDay 决定
type SessionStore interface {
	Save(ctx context.Context, sid string, identity *model.Identity) error
	// Load 会话不存在时返回 apperrors.ErrSessionNotFound
	Load(ctx context.Context, sid string) (*model.Identity, error)
	Delete(ctx context.Context, sid string) error
}

type ttlPolicy struct {
	ttl       time.Duration
	ttlAllDay time.Duration
}

func (p ttlPolicy) of(identity *model.Identity) time.Duration {
	if identity != nil && identity.AllDay {
		return p.ttlAllDay
	}
	return p.ttl
}

// RedisStore 基于 Redis 的会话存储
type RedisStore struct {
	client *redis.Client
	policy ttlPolicy
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(client *redis.Client, cfg *config.SessionConfig) *RedisStore {
	return &RedisStore{client: client, policy: ttlPolicy{ttl: cfg.TTL, ttlAllDay: cfg.TTLAllDay}}
}

func (s *RedisStore) Save(ctx context.Context, sid string, identity *model.Identity) error {
	return s.client.SaveSession(ctx, sid, identity, s.policy.of(identity))
}

func (s *RedisStore) Load(ctx context.Context, sid string) (*model.Identity, error) {
	var identity model.Identity
	found, err := s.client.LoadSession(ctx, sid, &identity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrSessionNotFound
	}
	return &identity, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.client.DeleteSession(ctx, sid)
}

// MemoryStore 进程内会话存储，Redis 不可用时降级使用
type MemoryStore struct {
	mu      sync.Mutex
	policy  ttlPolicy
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	identity model.Identity
	expires  time.Time
}

// NewMemoryStore 创建进程内会话存储
func NewMemoryStore(cfg *config.SessionConfig) *MemoryStore {
	return &MemoryStore{
		policy:  ttlPolicy{ttl: cfg.TTL, ttlAllDay: cfg.TTLAllDay},
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, sid string, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sid] = memoryEntry{identity: *identity, expires: s.now().Add(s.policy.of(identity))}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sid string) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sid]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, sid)
		return nil, apperrors.ErrSessionNotFound
	}
	identity := e.identity
	return &identity, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sid)
	return nil
}
