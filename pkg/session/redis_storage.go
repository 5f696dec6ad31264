package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the triple under three keys sharing a prefix. Saves run
// in a MULTI/EXEC transaction and clears delete all keys in one command.
type RedisStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStorage creates a storage using keys "<prefix>:authToken" and so on.
// ttl of zero keeps the keys until cleared.
func NewRedisStorage(client *redis.Client, prefix string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix, ttl: ttl}
}

// WaitReady pings Redis with exponential backoff until it answers or maxWait elapses
func (r *RedisStorage) WaitReady(ctx context.Context, maxWait time.Duration) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxWait

	return backoff.RetryNotify(func() error {
		return r.client.Ping(ctx).Err()
	}, backoff.WithContext(policy, ctx), func(err error, next time.Duration) {
		logx.Warnf("Redis session storage not ready, retrying in %s: %v", next, err)
	})
}

func (r *RedisStorage) key(name string) string {
	return r.prefix + ":" + name
}

func (r *RedisStorage) Load(ctx context.Context) (*Record, error) {
	vals, err := r.client.MGet(ctx, r.key(KeyAuthToken), r.key(KeyUserRole), r.key(KeyUserData)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	present := 0
	fields := make([]string, len(vals))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			fields[i] = s
			present++
		}
	}

	switch present {
	case 0:
		return nil, nil
	case len(vals):
		return &Record{
			AuthToken: fields[0],
			UserRole:  kernel.Role(fields[1]),
			UserData:  json.RawMessage(fields[2]),
		}, nil
	default:
		return &Record{
			AuthToken: fields[0],
			UserRole:  kernel.Role(fields[1]),
			UserData:  json.RawMessage(fields[2]),
		}, ErrPartialRecord
	}
}

func (r *RedisStorage) Save(ctx context.Context, rec Record) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(KeyAuthToken), rec.AuthToken, r.ttl)
		pipe.Set(ctx, r.key(KeyUserRole), string(rec.UserRole), r.ttl)
		pipe.Set(ctx, r.key(KeyUserData), string(rec.UserData), r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStorage) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(KeyAuthToken), r.key(KeyUserRole), r.key(KeyUserData)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
