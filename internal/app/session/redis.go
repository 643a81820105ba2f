package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"marketadmin/internal/app/config"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisStore keeps the token under a single redis key so several admin
// hosts can share one login.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisClient opens and pings a redis connection from cfg.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cant ping redis: %w", err)
	}

	logrus.Debugf("connected to redis at %s", cfg.Addr())
	return client, nil
}

func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = "admin_token"
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (r *RedisStore) Save(ctx context.Context, token string) error {
	return r.client.Set(ctx, r.key, token, 0).Err()
}

func (r *RedisStore) Delete(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

// Close releases the underlying connection pool when the client owns one.
func (r *RedisStore) Close() error {
	if c, ok := r.client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
