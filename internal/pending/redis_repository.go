package pending

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores pending ideas as JSON under "<prefix><token>"
// with TTL = expiresAt - now.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a Redis-based repository. Prefix may be empty.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "pending:"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(token string) string {
	return r.prefix + token
}

func (r *RedisRepository) Create(ctx context.Context, p *Idea) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	exp := time.Until(p.ExpiresAt)
	if exp <= 0 {
		// ensure a minimal TTL so Redis won't keep expired entries
		exp = time.Second
	}
	return r.client.Set(ctx, r.key(p.Token), b, exp).Err()
}

func (r *RedisRepository) Take(ctx context.Context, token string) (*Idea, error) {
	b, err := r.client.GetDel(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var p Idea
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MemoryRepository is used when Redis is not configured. Expired entries
// are dropped lazily on Take.
type MemoryRepository struct {
	mu    sync.Mutex
	store map[string]*Idea
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: map[string]*Idea{}}
}

func (m *MemoryRepository) Create(_ context.Context, p *Idea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.Token] = &cp
	return nil
}

func (m *MemoryRepository) Take(_ context.Context, token string) (*Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[token]
	if !ok {
		return nil, nil
	}
	delete(m.store, token)
	return p, nil
}
