package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type cacheRepoStub struct {
	entries map[string][]byte
	setTTL  time.Duration
	deleted []string
	failGet error
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{entries: make(map[string][]byte)}
}

func (r *cacheRepoStub) Get(_ context.Context, key string, dest interface{}) error {
	if r.failGet != nil {
		return r.failGet
	}
	payload, ok := r.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (r *cacheRepoStub) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.entries[key] = payload
	r.setTTL = ttl
	return nil
}

func (r *cacheRepoStub) DeleteByPattern(_ context.Context, pattern string) error {
	r.deleted = append(r.deleted, pattern)
	return nil
}

func TestCacheServiceRoundtrip(t *testing.T) {
	repo := newCacheRepoStub()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)

	require.NoError(t, cache.Set(context.Background(), "timetables:key", []string{"a", "b"}, 0))
	assert.Equal(t, time.Minute, repo.setTTL)

	var out []string
	hit, err := cache.Get(context.Background(), "timetables:key", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestCacheServiceMissIsNotAnError(t *testing.T) {
	cache := NewCacheService(newCacheRepoStub(), nil, time.Minute, nil, true)

	var out []string
	hit, err := cache.Get(context.Background(), "absent", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceSurfacesBackendErrors(t *testing.T) {
	repo := newCacheRepoStub()
	repo.failGet = errors.New("redis down")
	cache := NewCacheService(repo, nil, time.Minute, nil, true)

	var out []string
	hit, err := cache.Get(context.Background(), "key", &out)
	require.Error(t, err)
	assert.False(t, hit)
}

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := newCacheRepoStub()
	cache := NewCacheService(repo, nil, time.Minute, nil, false)

	require.NoError(t, cache.Set(context.Background(), "key", "value", 0))
	assert.Empty(t, repo.entries)

	hit, err := cache.Get(context.Background(), "key", new(string))
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceNilReceiverIsSafe(t *testing.T) {
	var cache *CacheService

	hit, err := cache.Get(context.Background(), "key", new(string))
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, cache.Set(context.Background(), "key", "value", 0))
	require.NoError(t, cache.Invalidate(context.Background(), "pattern"))
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := newCacheRepoStub()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)

	require.NoError(t, cache.Invalidate(context.Background(), "timetables:*"))
	assert.Equal(t, []string{"timetables:*"}, repo.deleted)
}
