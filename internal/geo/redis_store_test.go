package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"swapwise/internal/domain"
)

type mockRedisGetSetter struct {
	getVal  string
	getErr  error
	setErr  error
	lastKey string
	lastVal interface{}
	lastTTL time.Duration
}

func (m *mockRedisGetSetter) Get(ctx context.Context, key string) *redis.StringCmd {
	m.lastKey = key
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	cmd.SetVal(m.getVal)
	return cmd
}

func (m *mockRedisGetSetter) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastKey = key
	m.lastVal = value
	m.lastTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func TestRedisStore(t *testing.T) {
	t.Run("nil store is a miss", func(t *testing.T) {
		var s *RedisStore
		if _, ok := s.Get(context.Background(), "k"); ok {
			t.Fatalf("expected miss for nil store")
		}
		s.Set(context.Background(), "k", domain.Coordinate{}, 0)
	})

	t.Run("hit decodes json", func(t *testing.T) {
		mock := &mockRedisGetSetter{getVal: `{"latitude":27.7,"longitude":85.3}`}
		s := &RedisStore{client: mock, prefix: "geo:coord:", logger: zap.NewNop()}
		coord, ok := s.Get(context.Background(), "kathmandu,bagmati")
		if !ok {
			t.Fatalf("expected hit")
		}
		if coord.Latitude != 27.7 || coord.Longitude != 85.3 {
			t.Fatalf("unexpected coordinate %+v", coord)
		}
		if mock.lastKey != "geo:coord:kathmandu,bagmati" {
			t.Fatalf("unexpected key %q", mock.lastKey)
		}
	})

	t.Run("redis nil is a miss", func(t *testing.T) {
		s := &RedisStore{client: &mockRedisGetSetter{getErr: redis.Nil}, prefix: "geo:coord:", logger: zap.NewNop()}
		if _, ok := s.Get(context.Background(), "k"); ok {
			t.Fatalf("expected miss")
		}
	})

	t.Run("redis error fails open", func(t *testing.T) {
		s := &RedisStore{client: &mockRedisGetSetter{getErr: errors.New("redis down")}, prefix: "geo:coord:", logger: zap.NewNop()}
		if _, ok := s.Get(context.Background(), "k"); ok {
			t.Fatalf("expected miss on redis error")
		}
	})

	t.Run("corrupt payload is a miss", func(t *testing.T) {
		s := &RedisStore{client: &mockRedisGetSetter{getVal: "not-json"}, prefix: "geo:coord:", logger: zap.NewNop()}
		if _, ok := s.Get(context.Background(), "k"); ok {
			t.Fatalf("expected miss on corrupt payload")
		}
	})

	t.Run("set writes json with ttl", func(t *testing.T) {
		mock := &mockRedisGetSetter{}
		s := &RedisStore{client: mock, prefix: "geo:coord:", logger: zap.NewNop()}
		s.Set(context.Background(), "k", domain.Coordinate{Latitude: 1, Longitude: 2}, time.Hour)
		if mock.lastKey != "geo:coord:k" || mock.lastTTL != time.Hour {
			t.Fatalf("unexpected set key=%q ttl=%v", mock.lastKey, mock.lastTTL)
		}
		payload, ok := mock.lastVal.([]byte)
		if !ok || string(payload) != `{"latitude":1,"longitude":2}` {
			t.Fatalf("unexpected payload %v", mock.lastVal)
		}
	})
}
