package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 為 profile 快取與健康檢查用到的 Redis 指令子集，*redis.Client 直接實作
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	Close() error
}

// MemCache 以 map 實作 Cache，不處理過期；GetErr、SetErr 用來模擬 Redis 故障
type MemCache struct {
	GetErr error
	SetErr error

	mu      sync.Mutex
	entries map[string]string
	ttls    map[string]time.Duration
	closed  bool
}

func NewMemCache() *MemCache {
	return &MemCache{entries: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *MemCache) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.closed:
		return redis.NewStringResult("", redis.ErrClosed)
	case m.GetErr != nil:
		return redis.NewStringResult("", m.GetErr)
	}
	v, ok := m.entries[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

// Set 與 go-redis 相同，[]byte 與 string 原樣保存，其他型別以 fmt 格式化
func (m *MemCache) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.closed:
		return redis.NewStatusResult("", redis.ErrClosed)
	case m.SetErr != nil:
		return redis.NewStatusResult("", m.SetErr)
	}
	switch v := value.(type) {
	case []byte:
		m.entries[key] = string(v)
	case string:
		m.entries[key] = v
	default:
		m.entries[key] = fmt.Sprint(v)
	}
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

// TTL 回傳最後一次 Set 該 key 時給的過期時間
func (m *MemCache) TTL(key string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ttl, ok := m.ttls[key]
	return ttl, ok
}

func (m *MemCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemCache) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
