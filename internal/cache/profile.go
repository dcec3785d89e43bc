package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"account-service/internal/model"

	"github.com/redis/go-redis/v9"
)

const profileKeyPrefix = "user:profile:"

func profileKey(id int) string {
	return fmt.Sprintf("%s%d", profileKeyPrefix, id)
}

// Profiles 以 JSON 形式快取公開的使用者資料（不含密碼雜湊）
type Profiles struct {
	c   Cache
	ttl time.Duration
}

func NewProfiles(c Cache, ttl time.Duration) *Profiles {
	return &Profiles{c: c, ttl: ttl}
}

// GetProfile 未命中時回傳 (nil, false, nil)
func (p *Profiles) GetProfile(ctx context.Context, id int) (*model.User, bool, error) {
	raw, err := p.c.Get(ctx, profileKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get profile %d: %w", id, err)
	}

	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, false, fmt.Errorf("decode profile %d: %w", id, err)
	}
	return &u, true, nil
}

func (p *Profiles) PutProfile(ctx context.Context, u *model.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode profile %d: %w", u.ID, err)
	}
	if err := p.c.Set(ctx, profileKey(u.ID), raw, p.ttl).Err(); err != nil {
		return fmt.Errorf("set profile %d: %w", u.ID, err)
	}
	return nil
}

// NoopProfiles 在未設定 Redis 時使用，永遠未命中
type NoopProfiles struct{}

func (NoopProfiles) GetProfile(context.Context, int) (*model.User, bool, error) {
	return nil, false, nil
}

func (NoopProfiles) PutProfile(context.Context, *model.User) error { return nil }
