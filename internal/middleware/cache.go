package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unahur-dev/academico-api/internal/service"
)

const cacheKeyPrefix = "academico:response:"

// errCacheMiss signals an absent key; every other error is a backend fault.
var errCacheMiss = errors.New("cache miss")

// CacheStore abstracts the response-cache backend so the middleware can be
// exercised without a live Redis.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client as a CacheStore.
func NewRedisStore(client *redis.Client) CacheStore {
	return redisStore{client: client}
}

func (s redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, errCacheMiss
	}
	return value, err
}

func (s redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s redisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheGET serves successful GET responses from the store keyed by request
// path. Only detail routes should mount it: list bodies depend on pagination
// state and must always hit the store. Backend failures degrade to a
// pass-through.
func CacheGET(store CacheStore, ttl time.Duration, metricsSvc *service.MetricsService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKeyPrefix + c.Request.URL.Path
		if cached, err := store.Get(c.Request.Context(), key); err == nil {
			metricsSvc.RecordCacheOperation(true)
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		} else if !errors.Is(err, errCacheMiss) {
			logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		metricsSvc.RecordCacheOperation(false)

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder
		c.Next()

		if c.Writer.Status() != http.StatusOK || recorder.body.Len() == 0 {
			return
		}
		if err := store.Set(c.Request.Context(), key, recorder.body.Bytes(), ttl); err != nil {
			logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// InvalidateWrites drops the cached detail entry for the request path after
// a successful PUT or DELETE, so reads after a write never see the pre-write
// body. Mount it on the same routes that CacheGET caches.
func InvalidateWrites(store CacheStore, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if store == nil {
			return
		}
		if c.Request.Method != http.MethodPut && c.Request.Method != http.MethodDelete {
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		key := cacheKeyPrefix + c.Request.URL.Path
		if err := store.Del(c.Request.Context(), key); err != nil {
			logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}
