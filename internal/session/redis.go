package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisChannel carries the name of every key written through RedisStorage.
const redisChannel = "jp:storage"

// RedisStorage shares the session between terminals or hosts through Redis.
// Writes publish the key on redisChannel so other instances can reload.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage wraps an existing client.
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client, prefix: "jp:"}
}

// DialRedis connects to addr and verifies the connection.
func DialRedis(ctx context.Context, addr, password string, db int) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}
	return NewRedisStorage(client), nil
}

// Close closes the underlying client.
func (r *RedisStorage) Close() error { return r.client.Close() }

func (r *RedisStorage) key(k string) string { return r.prefix + k }

func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: redis get %s: %w", key, err)
	}
	return v, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("session: redis set %s: %w", key, err)
	}
	return r.publish(ctx, key)
}

func (r *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("session: redis del %s: %w", key, err)
	}
	return r.publish(ctx, key)
}

func (r *RedisStorage) publish(ctx context.Context, key string) error {
	if err := r.client.Publish(ctx, redisChannel, key).Err(); err != nil {
		return fmt.Errorf("session: redis publish %s: %w", key, err)
	}
	return nil
}

func (r *RedisStorage) Watch(ctx context.Context) (<-chan StorageEvent, error) {
	sub := r.client.Subscribe(ctx, redisChannel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close() //nolint:errcheck
		return nil, fmt.Errorf("session: redis subscribe: %w", err)
	}

	out := make(chan StorageEvent, 16)
	go func() {
		defer close(out)
		defer sub.Close() //nolint:errcheck
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- StorageEvent{Key: m.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
