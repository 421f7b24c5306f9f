package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"github.com/riskibarqy/fpl-advisor/internal/usecase"
	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 5 * time.Minute

// SnapshotPublisher is implemented by usecase.SnapshotService.
type SnapshotPublisher interface {
	Publish(ctx context.Context, gameweek int) (usecase.SnapshotResult, error)
}

type Config struct {
	SnapshotSpec  string
	CacheWarmSpec string
	JobTimeout    time.Duration
}

// Scheduler runs the snapshot publish and roster warm jobs on cron specs
// with a seconds field.
type Scheduler struct {
	cron      *cron.Cron
	snapshots SnapshotPublisher
	rosters   asset.RosterProvider
	gameweeks fantasy.GameweekResolver
	logger    *logging.Logger
	timeout   time.Duration
	base      context.Context
	cancel    context.CancelFunc
}

func New(snapshots SnapshotPublisher, rosters asset.RosterProvider, gameweeks fantasy.GameweekResolver, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	cronLogger := cronLogAdapter{logger: logger}
	base, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		snapshots: snapshots,
		rosters:   rosters,
		gameweeks: gameweeks,
		logger:    logger,
		timeout:   defaultJobTimeout,
		base:      base,
		cancel:    cancel,
	}
}

// Register adds the jobs whose cron schedule is non-empty.
func (s *Scheduler) Register(cfg Config) error {
	if cfg.JobTimeout > 0 {
		s.timeout = cfg.JobTimeout
	}
	if cfg.SnapshotSpec != "" {
		if s.snapshots == nil {
			return fmt.Errorf("snapshot job requires a snapshot publisher")
		}
		if _, err := s.cron.AddFunc(cfg.SnapshotSpec, s.PublishSnapshot); err != nil {
			return fmt.Errorf("register snapshot job: %w", err)
		}
	}
	if cfg.CacheWarmSpec != "" {
		if _, err := s.cron.AddFunc(cfg.CacheWarmSpec, s.WarmRoster); err != nil {
			return fmt.Errorf("register cache warm job: %w", err)
		}
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// PublishSnapshot writes the upcoming gameweek snapshot.
func (s *Scheduler) PublishSnapshot() {
	ctx, cancel := context.WithTimeout(s.base, s.timeout)
	defer cancel()

	result, err := s.snapshots.Publish(ctx, 0)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled snapshot publish failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled snapshot published",
		"gameweek", result.Gameweek,
		"assets", result.AssetCount,
		"duration_ms", result.DurationMs,
	)
}

// WarmRoster loads the upcoming roster through the cache chain.
func (s *Scheduler) WarmRoster() {
	ctx, cancel := context.WithTimeout(s.base, s.timeout)
	defer cancel()

	gameweek, err := s.gameweeks.NextGameweek(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "roster warm skipped, gameweek unresolved", "error", err)
		return
	}
	if gameweek <= 0 {
		return
	}
	roster, err := s.rosters.Roster(ctx, gameweek)
	if err != nil {
		s.logger.WarnContext(ctx, "roster warm failed", "gameweek", gameweek, "error", err)
		return
	}
	s.logger.DebugContext(ctx, "roster warmed", "gameweek", gameweek, "assets", roster.Len())
}

type cronLogAdapter struct {
	logger *logging.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error(msg, append(keysAndValues, "error", err)...)
}
