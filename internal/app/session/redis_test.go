package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"marketadmin/internal/app/config"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapRedis answers the three commands RedisStore sends from a plain map.
type mapRedis struct {
	redis.Cmdable
	values map[string]string
	err    error
}

func (m *mapRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mapRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	m.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (m *mapRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := m.values[k]; ok {
			delete(m.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	rdb := &mapRedis{values: map[string]string{}}
	store := NewRedisStore(rdb, "")

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "a missing key is an empty token")

	require.NoError(t, store.Save(ctx, "tok-r"))
	assert.Equal(t, "tok-r", rdb.values["admin_token"])

	s, err := New(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, "tok-r", s.Token())

	require.NoError(t, s.ClearToken(ctx))
	assert.NotContains(t, rdb.values, "admin_token")
	require.NoError(t, store.Delete(ctx), "deleting a missing key is fine")

	assert.NoError(t, store.Close())
}

func TestRedisStore_CustomKeyAndErrors(t *testing.T) {
	ctx := context.Background()
	rdb := &mapRedis{values: map[string]string{"ops:token": "tok-ops"}}
	store := NewRedisStore(rdb, "ops:token")

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-ops", token)

	rdb.err = errors.New("connection refused")
	_, err = store.Load(ctx)
	assert.EqualError(t, err, "connection refused")
	assert.Error(t, store.Save(ctx, "x"))
	assert.Error(t, store.Delete(ctx))

	_, err = New(ctx, store)
	assert.Error(t, err)
}

func TestRedisStore_Live(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST not set")
	}
	ctx := context.Background()
	client, err := NewRedisClient(ctx, config.RedisConfig{
		Host:        host,
		Port:        6379,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
	require.NoError(t, err)

	store := NewRedisStore(client, "marketadmin_test_token")
	t.Cleanup(func() {
		_ = store.Delete(ctx)
		_ = store.Close()
	})

	require.NoError(t, store.Save(ctx, "tok-live"))
	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-live", token)

	require.NoError(t, store.Delete(ctx))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
