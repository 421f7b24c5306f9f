package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
	basecache "github.com/riskibarqy/fpl-advisor/internal/platform/cache"
)

const (
	rosterPrefix   = "roster:gw:"
	fixturesPrefix = "fixtures:gw:"
)

func rosterKey(gameweek int) string {
	return rosterPrefix + strconv.Itoa(gameweek)
}

func fixturesKey(gameweek int) string {
	return fixturesPrefix + strconv.Itoa(gameweek)
}

// RosterProvider memoizes rosters per gameweek in process.
type RosterProvider struct {
	next  asset.RosterProvider
	cache *basecache.Store[asset.Roster]
}

func NewRosterProvider(next asset.RosterProvider, cache *basecache.Store[asset.Roster]) *RosterProvider {
	return &RosterProvider{next: next, cache: cache}
}

func (p *RosterProvider) Roster(ctx context.Context, gameweek int) (asset.Roster, error) {
	return p.cache.GetOrLoad(ctx, rosterKey(gameweek), func(ctx context.Context) (asset.Roster, error) {
		return p.next.Roster(ctx, gameweek)
	})
}

// InvalidateRoster drops one gameweek, or every cached gameweek when
// gameweek is not positive.
func (p *RosterProvider) InvalidateRoster(ctx context.Context, gameweek int) error {
	if gameweek <= 0 {
		p.cache.DeletePrefix(ctx, rosterPrefix)
		return nil
	}
	p.cache.Delete(ctx, rosterKey(gameweek))
	return nil
}

func (p *RosterProvider) Stats() basecache.Stats {
	return p.cache.Stats()
}

// FixtureProvider memoizes fixture slates per gameweek in process.
type FixtureProvider struct {
	next  fixture.Provider
	cache *basecache.Store[[]fixture.Fixture]
}

func NewFixtureProvider(next fixture.Provider, cache *basecache.Store[[]fixture.Fixture]) *FixtureProvider {
	return &FixtureProvider{next: next, cache: cache}
}

func (p *FixtureProvider) Fixtures(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	items, err := p.cache.GetOrLoad(ctx, fixturesKey(gameweek), func(ctx context.Context) ([]fixture.Fixture, error) {
		items, err := p.next.Fixtures(ctx, gameweek)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]fixture.Fixture(nil), items...), nil
}

func (p *FixtureProvider) InvalidateRoster(ctx context.Context, gameweek int) error {
	if gameweek <= 0 {
		p.cache.DeletePrefix(ctx, fixturesPrefix)
		return nil
	}
	p.cache.Delete(ctx, fixturesKey(gameweek))
	return nil
}
