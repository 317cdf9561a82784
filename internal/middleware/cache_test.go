package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	failing bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: map[string][]byte{}}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return nil, errors.New("backend down")
	}
	value, ok := s.entries[key]
	if !ok {
		return nil, errCacheMiss
	}
	return value, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("backend down")
	}
	s.entries[key] = value
	return nil
}

func (s *memoryStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("backend down")
	}
	delete(s.entries, key)
	return nil
}

func newCachedRouter(store CacheStore, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/car/:id", CacheGET(store, time.Minute, nil, nil), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "hits": *hits})
	})
	r.PUT("/car/:id", InvalidateWrites(store, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.DELETE("/car/:id", InvalidateWrites(store, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestCacheGETServesSecondReadFromCache(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newCachedRouter(store, &hits)

	first := doRequest(router, http.MethodGet, "/car/3")
	require.Equal(t, http.StatusOK, first.Code)
	second := doRequest(router, http.MethodGet, "/car/3")
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestInvalidateWritesDropsEntryOnUpdate(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newCachedRouter(store, &hits)

	doRequest(router, http.MethodGet, "/car/3")
	require.Equal(t, 1, hits)

	rec := doRequest(router, http.MethodPut, "/car/3")
	require.Equal(t, http.StatusOK, rec.Code)

	fresh := doRequest(router, http.MethodGet, "/car/3")
	require.Equal(t, http.StatusOK, fresh.Code)
	assert.Equal(t, 2, hits, "read after write must not see the cached pre-write body")
	assert.Contains(t, fresh.Body.String(), `"hits":2`)
}

func TestInvalidateWritesDropsEntryOnDelete(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	router := newCachedRouter(store, &hits)

	doRequest(router, http.MethodGet, "/car/3")
	doRequest(router, http.MethodDelete, "/car/3")

	doRequest(router, http.MethodGet, "/car/3")
	assert.Equal(t, 2, hits)
}

func TestInvalidateWritesKeepsEntryOnFailedWrite(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/car/:id", CacheGET(store, time.Minute, nil, nil), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	r.PUT("/car/:id", InvalidateWrites(store, nil), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "carrera no encontrada"})
	})

	doRequest(r, http.MethodGet, "/car/3")
	doRequest(r, http.MethodPut, "/car/3")
	doRequest(r, http.MethodGet, "/car/3")

	assert.Equal(t, 1, hits, "a rejected write must not evict the cached body")
}

func TestCacheGETDegradesWhenBackendFails(t *testing.T) {
	store := newMemoryStore()
	store.failing = true
	hits := 0
	router := newCachedRouter(store, &hits)

	first := doRequest(router, http.MethodGet, "/car/3")
	second := doRequest(router, http.MethodGet, "/car/3")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 2, hits)
}
