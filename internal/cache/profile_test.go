package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"account-service/internal/model"

	"github.com/stretchr/testify/require"
)

func TestProfiles(t *testing.T) {
	ctx := context.Background()
	u := &model.User{ID: 7, Username: "alice", Email: "alice@x.com", CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	t.Run("put then get", func(t *testing.T) {
		c := NewMemCache()
		p := NewProfiles(c, 5*time.Minute)

		require.NoError(t, p.PutProfile(ctx, u))
		ttl, ok := c.TTL("user:profile:7")
		require.True(t, ok)
		require.Equal(t, 5*time.Minute, ttl)

		got, ok, err := p.GetProfile(ctx, 7)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, u.Username, got.Username)
		require.True(t, u.CreatedAt.Equal(got.CreatedAt))

		got, ok, err = p.GetProfile(ctx, 8)
		require.NoError(t, err)
		require.False(t, ok)
		require.Nil(t, got)
	})

	t.Run("stored payload is public user json", func(t *testing.T) {
		c := NewMemCache()
		require.NoError(t, NewProfiles(c, 0).PutProfile(ctx, u))

		raw := c.Get(ctx, "user:profile:7").Val()
		require.NotContains(t, raw, "password")
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &m))
		require.EqualValues(t, 7, m["id"])
		require.Equal(t, "alice@x.com", m["email"])
	})

	t.Run("get error", func(t *testing.T) {
		c := NewMemCache()
		c.GetErr = errors.New("conn refused")
		_, ok, err := NewProfiles(c, time.Minute).GetProfile(ctx, 1)
		require.ErrorContains(t, err, "get profile 1: conn refused")
		require.False(t, ok)
	})

	t.Run("corrupt entry", func(t *testing.T) {
		c := NewMemCache()
		require.NoError(t, c.Set(ctx, "user:profile:1", "{not json", 0).Err())
		_, ok, err := NewProfiles(c, time.Minute).GetProfile(ctx, 1)
		require.ErrorContains(t, err, "decode profile 1")
		require.False(t, ok)
	})

	t.Run("set error leaves cache empty", func(t *testing.T) {
		c := NewMemCache()
		c.SetErr = errors.New("readonly")
		p := NewProfiles(c, time.Minute)
		require.ErrorContains(t, p.PutProfile(ctx, u), "set profile 7")

		_, ok := c.TTL("user:profile:7")
		require.False(t, ok)
		c.SetErr = nil
		_, ok, err := p.GetProfile(ctx, 7)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("closed client", func(t *testing.T) {
		c := NewMemCache()
		p := NewProfiles(c, time.Minute)
		require.NoError(t, c.Close())
		require.True(t, c.Closed())

		require.Error(t, p.PutProfile(ctx, u))
		_, ok, err := p.GetProfile(ctx, 7)
		require.Error(t, err)
		require.False(t, ok)
	})
}

func TestNoopProfiles(t *testing.T) {
	var p NoopProfiles
	u, ok, err := p.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, u)
	require.NoError(t, p.PutProfile(context.Background(), &model.User{ID: 1}))
}
