package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	readErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return goredis.NewStringResult("", f.readErr)
	}
	value, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

type stubRosters struct {
	calls int
}

func (s *stubRosters) Roster(_ context.Context, gameweek int) (asset.Roster, error) {
	s.calls++
	return asset.NewRoster(gameweek, []asset.Asset{
		{ID: 7, Name: "Salah", Position: asset.PositionMidfielder, TeamID: 12, Cost: 130, Form: 8.5, FixtureDiff: 40},
		{ID: 3, Name: "Raya", Position: asset.PositionGoalkeeper, TeamID: 1, Cost: 55},
	}), nil
}

func TestRosterCache_ReadThrough(t *testing.T) {
	rdb := newFakeRedis()
	next := &stubRosters{}
	cache := NewRosterCache(next, rdb, time.Minute, nil)
	ctx := context.Background()

	first, err := cache.Roster(ctx, 9)
	require.NoError(t, err)
	second, err := cache.Roster(ctx, 9)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, time.Minute, rdb.ttls["fpl-advisor:roster:9"])

	salah, ok := second.Get(7)
	require.True(t, ok)
	assert.Equal(t, 8.5, salah.Form)
	assert.Equal(t, asset.PositionMidfielder, salah.Position)
}

func TestRosterCache_FallsBackWhenRedisFails(t *testing.T) {
	rdb := newFakeRedis()
	rdb.readErr = errors.New("connection refused")
	next := &stubRosters{}
	cache := NewRosterCache(next, rdb, 0, nil)

	roster, err := cache.Roster(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, roster.Len())
	assert.Equal(t, 1, next.calls)
}

func TestRosterCache_Invalidate(t *testing.T) {
	rdb := newFakeRedis()
	next := &stubRosters{}
	cache := NewRosterCache(next, rdb, time.Minute, nil)
	ctx := context.Background()

	_, err := cache.Roster(ctx, 4)
	require.NoError(t, err)
	require.NoError(t, cache.InvalidateRoster(ctx, 4))
	_, err = cache.Roster(ctx, 4)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}
