package store

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	"github.com/pbzzardari/PlayverseZone/pkg/errors"
)

// DefaultRedisPrefix namespaces the per-user progress hashes.
const DefaultRedisPrefix = "playverse:progress:"

// RedisStore keeps each user's progress in one hash: field = key, value = JSON.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	logger *slog.Logger
}

// NewRedisStore creates a store over an existing client.
// An empty prefix uses DefaultRedisPrefix.
func NewRedisStore(client redis.Cmdable, prefix string, logger *slog.Logger) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

// NewRedisStoreFromURL parses a redis:// URL and connects lazily.
func NewRedisStoreFromURL(url, prefix string, logger *slog.Logger) (*RedisStore, *redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, errors.ErrStorageError("parse redis url", err)
	}
	cli := redis.NewClient(opt)
	return NewRedisStore(cli, prefix, logger), cli, nil
}

func (s *RedisStore) hashKey(userID string) string {
	return s.prefix + userID
}

// Load reads the user's hash. A missing hash is an empty state.
func (s *RedisStore) Load(ctx context.Context, userID string) (*domain.ProgressState, error) {
	fields, err := s.client.HGetAll(ctx, s.hashKey(userID)).Result()
	if err != nil {
		return nil, errors.ErrStorageError("load progress", err)
	}

	values := make(map[Key][]byte, len(fields))
	for k, v := range fields {
		values[Key(k)] = []byte(v)
	}
	return Decode(values, s.logger.With("user_id", userID)), nil
}

// Save writes all keys with one HSET.
func (s *RedisStore) Save(ctx context.Context, userID string, state *domain.ProgressState) error {
	encoded, err := Encode(state)
	if err != nil {
		return errors.ErrStorageError("save progress", err)
	}

	fields := make(map[string]any, len(encoded))
	for k, v := range encoded {
		fields[string(k)] = string(v)
	}

	if err := s.client.HSet(ctx, s.hashKey(userID), fields).Err(); err != nil {
		return errors.ErrStorageError("save progress", err)
	}
	return nil
}

// Delete removes the user's hash.
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.hashKey(userID)).Err(); err != nil {
		return errors.ErrStorageError("delete progress", err)
	}
	return nil
}
