package geo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"swapwise/internal/domain"
)

const redisStoreTimeout = 500 * time.Millisecond

type redisGetSetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore guarda coordenadas en Redis como JSON. Los errores se tratan como miss.
type RedisStore struct {
	client redisGetSetter
	prefix string
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client: client,
		prefix: "geo:coord:",
		logger: logger,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (domain.Coordinate, bool) {
	if s == nil || s.client == nil {
		return domain.Coordinate{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, redisStoreTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("redis get coordinate failed", zap.String("key", key), zap.Error(err))
		}
		return domain.Coordinate{}, false
	}
	var coord domain.Coordinate
	if err := json.Unmarshal(raw, &coord); err != nil {
		s.logger.Warn("redis coordinate decode failed", zap.String("key", key), zap.Error(err))
		return domain.Coordinate{}, false
	}
	return coord, true
}

func (s *RedisStore) Set(ctx context.Context, key string, coord domain.Coordinate, ttl time.Duration) {
	if s == nil || s.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, redisStoreTimeout)
	defer cancel()

	payload, err := json.Marshal(coord)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, s.prefix+key, payload, ttl).Err(); err != nil {
		s.logger.Warn("redis set coordinate failed", zap.String("key", key), zap.Error(err))
	}
}
