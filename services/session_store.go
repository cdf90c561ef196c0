package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "menux:session:"

// SessionStore keeps sessions between requests. Sessions expire after the
// store's TTL; nothing outlives a browsing session.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

// NewSessionStore uses Redis when a client is available and process memory otherwise.
func NewSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	if client == nil {
		return NewMemorySessionStore(ttl)
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return decodeSession(b)
}

func (r *RedisSessionStore) Save(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.ID, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

type memorySession struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore is the single-process fallback when Redis is down.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
	swept    time.Time // last sweep of expired entries
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	ms, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.ttl > 0 && m.now().After(ms.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return decodeSession(ms.data)
}

func (m *MemorySessionStore) Save(_ context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ttl > 0 && now.Sub(m.swept) >= m.ttl {
		m.sweep(now)
	}
	m.sessions[s.ID] = memorySession{data: b, expiresAt: now.Add(m.ttl)}
	return nil
}

// sweep drops expired sessions, read or not. Callers hold m.mu.
func (m *MemorySessionStore) sweep(now time.Time) {
	for id, ms := range m.sessions {
		if now.After(ms.expiresAt) {
			delete(m.sessions, id)
		}
	}
	m.swept = now
}

func decodeSession(b []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if s.Tracker == nil {
		s.Tracker = &Tracker{}
	}
	if s.Editor == nil {
		s.Editor = NewConfigurator()
	}
	if s.Cart == nil {
		s.Cart = &Cart{}
	}
	return &s, nil
}
