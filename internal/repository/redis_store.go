package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/user-directory/internal/domain"
)

// RedisStore keeps the collection as a JSON string under one key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore returns a store for key.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (domain.Collection, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Collection{}, nil
		}
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}
	users, err := domain.DecodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.key, err)
	}
	return users, nil
}

func (s *RedisStore) Save(ctx context.Context, users domain.Collection) error {
	data, err := domain.EncodeCollection(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
