package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
	basecache "github.com/riskibarqy/fpl-advisor/internal/platform/cache"
)

type countingRosters struct {
	calls int
	err   error
}

func (c *countingRosters) Roster(_ context.Context, gameweek int) (asset.Roster, error) {
	c.calls++
	if c.err != nil {
		return asset.Roster{}, c.err
	}
	return asset.NewRoster(gameweek, []asset.Asset{{ID: 1, Name: "Saka", Position: asset.PositionMidfielder}}), nil
}

type countingFixtures struct {
	calls int
}

func (c *countingFixtures) Fixtures(_ context.Context, gameweek int) ([]fixture.Fixture, error) {
	c.calls++
	return []fixture.Fixture{{ID: 10, Gameweek: gameweek, HomeTeamID: 1, AwayTeamID: 2}}, nil
}

func TestRosterProvider_CachesAndInvalidates(t *testing.T) {
	next := &countingRosters{}
	provider := NewRosterProvider(next, basecache.NewStore[asset.Roster](time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		roster, err := provider.Roster(ctx, 5)
		if err != nil {
			t.Fatalf("Roster error: %v", err)
		}
		if roster.Gameweek != 5 || roster.Len() != 1 {
			t.Fatalf("unexpected roster: %+v", roster)
		}
	}
	if next.calls != 1 {
		t.Fatalf("upstream called %d times, want 1", next.calls)
	}

	if _, err := provider.Roster(ctx, 6); err != nil {
		t.Fatalf("Roster gw6 error: %v", err)
	}
	if err := provider.InvalidateRoster(ctx, 5); err != nil {
		t.Fatalf("InvalidateRoster error: %v", err)
	}
	if _, err := provider.Roster(ctx, 5); err != nil {
		t.Fatalf("Roster after invalidate error: %v", err)
	}
	if next.calls != 3 {
		t.Fatalf("upstream called %d times, want 3", next.calls)
	}

	stats := provider.Stats()
	if stats.Loads != 3 || stats.Hits != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if err := provider.InvalidateRoster(ctx, 0); err != nil {
		t.Fatalf("InvalidateRoster all error: %v", err)
	}
	if _, err := provider.Roster(ctx, 6); err != nil {
		t.Fatalf("Roster gw6 after invalidate all error: %v", err)
	}
	if next.calls != 4 {
		t.Fatalf("upstream called %d times, want 4", next.calls)
	}
}

func TestRosterProvider_PropagatesErrors(t *testing.T) {
	boom := errors.New("snapshot missing")
	provider := NewRosterProvider(&countingRosters{err: boom}, basecache.NewStore[asset.Roster](time.Minute))

	if _, err := provider.Roster(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestFixtureProvider_ReturnsCopies(t *testing.T) {
	next := &countingFixtures{}
	provider := NewFixtureProvider(next, basecache.NewStore[[]fixture.Fixture](time.Minute))
	ctx := context.Background()

	first, err := provider.Fixtures(ctx, 4)
	if err != nil {
		t.Fatalf("Fixtures error: %v", err)
	}
	first[0].HomeTeamID = 99

	second, err := provider.Fixtures(ctx, 4)
	if err != nil {
		t.Fatalf("Fixtures error: %v", err)
	}
	if second[0].HomeTeamID != 1 {
		t.Fatalf("cached slice was mutated through a caller copy")
	}
	if next.calls != 1 {
		t.Fatalf("upstream called %d times, want 1", next.calls)
	}
}
