// Package redisstore is the key-value adapter of the store contract. Records
// are JSON-encoded under namespaced keys, with redis sets and lists serving
// as the secondary indexes a relational backend gets for free.
package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "convene:"

const operationTimeout = 5 * time.Second

type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Open connects to redis at redisURL and verifies the connection.
func Open(redisURL string) (*Store, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func operationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), operationTimeout)
}

func key(parts ...string) string {
	joined := keyPrefix
	for index, part := range parts {
		if index > 0 {
			joined += ":"
		}
		joined += part
	}
	return joined
}

func (s *Store) setJSON(ctx context.Context, storageKey string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, storageKey, data, 0).Err()
}

func (s *Store) getJSON(ctx context.Context, storageKey string, target any) (bool, error) {
	data, err := s.client.Get(ctx, storageKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, err
	}
	return true, nil
}
