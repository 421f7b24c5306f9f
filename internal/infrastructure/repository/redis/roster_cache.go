package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
)

const defaultRosterTTL = 15 * time.Minute

// Cmdable is the subset of go-redis used by the roster cache.
type Cmdable interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

type cachedRoster struct {
	Gameweek int           `json:"gameweek"`
	Assets   []asset.Asset `json:"assets"`
}

// RosterCache shares rosters between instances. Redis failures degrade to the
// wrapped provider.
type RosterCache struct {
	next   asset.RosterProvider
	rdb    Cmdable
	ttl    time.Duration
	prefix string
	logger *logging.Logger
}

func NewRosterCache(next asset.RosterProvider, rdb Cmdable, ttl time.Duration, logger *logging.Logger) *RosterCache {
	if ttl <= 0 {
		ttl = defaultRosterTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterCache{next: next, rdb: rdb, ttl: ttl, prefix: "fpl-advisor:roster:", logger: logger}
}

func (c *RosterCache) key(gameweek int) string {
	return c.prefix + strconv.Itoa(gameweek)
}

func (c *RosterCache) Roster(ctx context.Context, gameweek int) (asset.Roster, error) {
	key := c.key(gameweek)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedRoster
		decodeErr := sonic.Unmarshal(raw, &cached)
		if decodeErr == nil {
			return asset.NewRoster(cached.Gameweek, cached.Assets), nil
		}
		c.logger.WarnContext(ctx, "discard undecodable cached roster", "key", key, "error", decodeErr)
	case errors.Is(err, goredis.Nil):
	default:
		c.logger.WarnContext(ctx, "redis roster read failed", "key", key, "error", err)
	}

	roster, err := c.next.Roster(ctx, gameweek)
	if err != nil {
		return asset.Roster{}, err
	}

	payload, err := sonic.Marshal(cachedRoster{Gameweek: roster.Gameweek, Assets: roster.Sorted()})
	if err != nil {
		return roster, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "redis roster write failed", "key", key, "error", err)
	}
	return roster, nil
}

func (c *RosterCache) InvalidateRoster(ctx context.Context, gameweek int) error {
	if err := c.rdb.Del(ctx, c.key(gameweek)).Err(); err != nil {
		return fmt.Errorf("redis delete roster gw=%d: %w", gameweek, err)
	}
	return nil
}
