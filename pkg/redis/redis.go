package redis

import (
	"context"
	"gotierlist/pkg/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// Type for the client.
type RedisClient struct {
	*redis.Client
}

// NewClient creates the client for the configured instance and checks the connection.
func NewClient(cfg *config.Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     100,
		MinIdleConns: 10,
		PoolTimeout:  30 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisClient{Client: client}, nil
}

// Close the client connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Wrapper to return the Result directly.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.Client.Get(ctx, key).Result()
}

// Wrapper to already return the .Err()
func (r *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}

// GetKeysByPrefix returns every key starting with the prefix, using SCAN.
func (r *RedisClient) GetKeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.Client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// ReplaceList atomically replaces a list with the given values.
func (r *RedisClient) ReplaceList(ctx context.Context, key string, values ...string) error {
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}

	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(items) > 0 {
			pipe.RPush(ctx, key, items...)
		}
		return nil
	})
	return err
}

// ListIndex returns the element of the list on the given index.
func (r *RedisClient) ListIndex(ctx context.Context, key string, index int64) (string, error) {
	return r.Client.LIndex(ctx, key, index).Result()
}
