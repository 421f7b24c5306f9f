package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"golang.org/x/sync/errgroup"
)

// SnapshotPublisher persists gameweek snapshots for later reads.
type SnapshotPublisher interface {
	PublishRoster(ctx context.Context, roster asset.Roster) error
	PublishFixtures(ctx context.Context, gameweek int, items []fixture.Fixture) error
}

// RosterInvalidator drops cached rosters of a gameweek.
type RosterInvalidator interface {
	InvalidateRoster(ctx context.Context, gameweek int) error
}

type SnapshotResult struct {
	Gameweek     int   `json:"gameweek"`
	AssetCount   int   `json:"asset_count"`
	FixtureCount int   `json:"fixture_count"`
	DurationMs   int64 `json:"duration_ms"`
}

// SnapshotService copies the live roster and fixture slate into snapshot storage.
type SnapshotService struct {
	rosters      asset.RosterProvider
	fixtures     fixture.Provider
	gameweeks    fantasy.GameweekResolver
	publisher    SnapshotPublisher
	invalidators []RosterInvalidator
	logger       *logging.Logger
	now          func() time.Time
}

func NewSnapshotService(
	rosters asset.RosterProvider,
	fixtures fixture.Provider,
	gameweeks fantasy.GameweekResolver,
	publisher SnapshotPublisher,
	logger *logging.Logger,
	invalidators ...RosterInvalidator,
) *SnapshotService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SnapshotService{
		rosters:      rosters,
		fixtures:     fixtures,
		gameweeks:    gameweeks,
		publisher:    publisher,
		invalidators: invalidators,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *SnapshotService) Publish(ctx context.Context, gameweek int) (SnapshotResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Publish")
	defer span.End()

	if s.publisher == nil {
		return SnapshotResult{}, fmt.Errorf("%w: snapshot storage is not configured", ErrDependencyUnavailable)
	}
	if gameweek < 0 {
		return SnapshotResult{}, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}
	if gameweek == 0 {
		if s.gameweeks == nil {
			return SnapshotResult{}, fmt.Errorf("%w: gameweek is required", ErrInvalidInput)
		}
		next, err := s.gameweeks.NextGameweek(ctx)
		if err != nil {
			return SnapshotResult{}, dataUnavailable(SourceGameweek, 0, err)
		}
		gameweek = next
	}

	start := s.now()

	var (
		roster asset.Roster
		items  []fixture.Fixture
	)
	fetch, fetchCtx := errgroup.WithContext(ctx)
	fetch.Go(func() error {
		value, err := s.rosters.Roster(fetchCtx, gameweek)
		if err != nil {
			return dataUnavailable(SourceRoster, gameweek, err)
		}
		roster = value
		return nil
	})
	fetch.Go(func() error {
		value, err := s.fixtures.Fixtures(fetchCtx, gameweek)
		if err != nil {
			return dataUnavailable(SourceFixtures, gameweek, err)
		}
		items = value
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return SnapshotResult{}, err
	}

	write, writeCtx := errgroup.WithContext(ctx)
	write.Go(func() error {
		if err := s.publisher.PublishRoster(writeCtx, roster); err != nil {
			return fmt.Errorf("publish roster gw=%d: %w", gameweek, err)
		}
		return nil
	})
	write.Go(func() error {
		if err := s.publisher.PublishFixtures(writeCtx, gameweek, items); err != nil {
			return fmt.Errorf("publish fixtures gw=%d: %w", gameweek, err)
		}
		return nil
	})
	if err := write.Wait(); err != nil {
		return SnapshotResult{}, err
	}

	for _, invalidator := range s.invalidators {
		if err := invalidator.InvalidateRoster(ctx, gameweek); err != nil {
			s.logger.WarnContext(ctx, "invalidate roster cache failed", "gameweek", gameweek, "error", err)
		}
	}

	result := SnapshotResult{
		Gameweek:     gameweek,
		AssetCount:   roster.Len(),
		FixtureCount: len(items),
		DurationMs:   s.now().Sub(start).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "snapshot published",
		"gameweek", gameweek,
		"assets", result.AssetCount,
		"fixtures", result.FixtureCount,
	)
	return result, nil
}
