package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/platform/id"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type RecommendInput struct {
	AccountID int64
	Gameweek  int
	Persona   string
}

type RecommendService struct {
	rosters   asset.RosterProvider
	squads    fantasy.SquadProvider
	fixtures  fixture.Provider
	managers  recommendation.ManagerProvider
	gameweeks fantasy.GameweekResolver
	narrative recommendation.NarrativeGenerator
	repo      recommendation.Repository
	metrics   Metrics
	engine    *recommendation.Engine
	idGen     id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewRecommendService(
	rosters asset.RosterProvider,
	squads fantasy.SquadProvider,
	fixtures fixture.Provider,
	engine *recommendation.Engine,
	idGen id.Generator,
	logger *logging.Logger,
) *RecommendService {
	if engine == nil {
		engine = recommendation.NewDefaultEngine()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RecommendService{
		rosters:  rosters,
		squads:   squads,
		fixtures: fixtures,
		engine:   engine,
		idGen:    idGen,
		logger:   logger,
		metrics:  noopMetrics{},
		now:      time.Now,
	}
}

func (s *RecommendService) SetManagerProvider(managers recommendation.ManagerProvider) {
	s.managers = managers
}

func (s *RecommendService) SetGameweekResolver(resolver fantasy.GameweekResolver) {
	s.gameweeks = resolver
}

func (s *RecommendService) SetNarrativeGenerator(generator recommendation.NarrativeGenerator) {
	s.narrative = generator
}

func (s *RecommendService) SetRepository(repo recommendation.Repository) {
	s.repo = repo
}

func (s *RecommendService) SetMetrics(metrics Metrics) {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	s.metrics = metrics
}

type recommendSnapshot struct {
	roster   asset.Roster
	squad    fantasy.Squad
	fixtures []fixture.Fixture
	manager  recommendation.ManagerSummary
}

func (s *RecommendService) Recommend(ctx context.Context, input RecommendInput) (recommendation.Recommendation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendService.Recommend", attribute.Int64("account_id", input.AccountID))
	defer span.End()
	ctx = logging.WithFields(ctx, "account_id", input.AccountID)

	start := s.now()
	item, err := s.recommend(ctx, input)
	s.metrics.RecordRecommendation(ctx, outcomeOf(item, err), s.now().Sub(start))
	if err != nil {
		span.RecordError(err)
		return recommendation.Recommendation{}, err
	}

	span.SetAttributes(
		attribute.Int("gameweek", item.Gameweek),
		attribute.Int64("transfer_out", item.Transfer.Out.ID),
		attribute.Int64("transfer_in", item.Transfer.In.ID),
	)
	return item, nil
}

func (s *RecommendService) recommend(ctx context.Context, input RecommendInput) (recommendation.Recommendation, error) {
	if input.AccountID <= 0 {
		return recommendation.Recommendation{}, fmt.Errorf("%w: account_id must be greater than zero", ErrInvalidInput)
	}
	if input.Gameweek < 0 {
		return recommendation.Recommendation{}, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}
	persona, err := recommendation.ParsePersona(input.Persona)
	if err != nil {
		return recommendation.Recommendation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	gameweek, err := s.resolveGameweek(ctx, input.Gameweek)
	if err != nil {
		return recommendation.Recommendation{}, err
	}

	snapshot, err := s.fetchSnapshot(ctx, input.AccountID, gameweek)
	if err != nil {
		return recommendation.Recommendation{}, err
	}

	if len(snapshot.squad.AssetIDs) == 0 {
		return recommendation.Recommendation{}, fantasy.NewMalformedSquadError(fantasy.MalformedReasonSize, "account=%d has no picks", input.AccountID)
	}
	squad, missing := snapshot.roster.Lookup(snapshot.squad.AssetIDs)
	if len(missing) > 0 {
		return recommendation.Recommendation{}, fantasy.NewMalformedSquadError(fantasy.MalformedReasonMissing, "assets %v are not in the gw=%d roster", missing, gameweek)
	}

	held := make(map[int64]struct{}, len(squad))
	for _, item := range squad {
		held[item.ID] = struct{}{}
	}

	transfer, lineup, err := s.engine.Plan(squad, snapshot.roster.Candidates(held))
	if err != nil {
		return recommendation.Recommendation{}, err
	}

	recommendationID, err := s.idGen.NewID()
	if err != nil {
		return recommendation.Recommendation{}, fmt.Errorf("generate recommendation id: %w", err)
	}

	result := recommendation.Recommendation{
		ID:               recommendationID,
		AccountID:        input.AccountID,
		Gameweek:         gameweek,
		Persona:          persona,
		Manager:          snapshot.manager,
		Transfer:         transfer,
		Starting:         lineup.Starting,
		Bench:            lineup.Bench,
		Captain:          lineup.Captain,
		ViceCaptain:      lineup.ViceCaptain,
		UpcomingFixtures: snapshot.fixtures,
		CreatedAt:        s.now().UTC(),
	}

	result.Narrative, result.NarrativeFallback = s.generateNarrative(ctx, recommendation.NarrativeRequest{
		Persona:          persona,
		Gameweek:         gameweek,
		Manager:          snapshot.manager,
		Squad:            s.engine.Weights().ScoreAll(squad),
		CurrentCaptainID: snapshot.squad.CaptainID,
		Transfer:         transfer,
		Lineup:           lineup,
	})

	if s.repo != nil {
		if err := s.repo.Save(ctx, result); err != nil {
			s.logger.WarnContext(ctx, "save recommendation failed",
				"gameweek", result.Gameweek,
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "recommendation built",
		"gameweek", result.Gameweek,
		"transfer_out", transfer.Out.ID,
		"transfer_in", transfer.In.ID,
		"captain", lineup.Captain.ID,
		"fallback_lineup", lineup.FallbackApplied,
		"narrative_fallback", result.NarrativeFallback,
	)

	return result, nil
}

func (s *RecommendService) resolveGameweek(ctx context.Context, gameweek int) (int, error) {
	if gameweek > 0 {
		return gameweek, nil
	}
	if s.gameweeks == nil {
		return 0, fmt.Errorf("%w: gameweek is required", ErrInvalidInput)
	}

	next, err := s.gameweeks.NextGameweek(ctx)
	if err != nil {
		return 0, dataUnavailable(SourceGameweek, 0, err)
	}
	if next <= 0 {
		return 0, &DataUnavailableError{Source: SourceGameweek, Err: errors.New("season has no upcoming gameweek")}
	}
	return next, nil
}

// fetchSnapshot loads roster, squad, fixtures and manager summary in parallel.
// The manager summary is optional; every other source is required.
func (s *RecommendService) fetchSnapshot(ctx context.Context, accountID int64, gameweek int) (recommendSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendService.fetchSnapshot")
	defer span.End()

	var snapshot recommendSnapshot
	snapshot.manager = recommendation.ManagerSummary{AccountID: accountID}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	p.Go(func(ctx context.Context) error {
		roster, err := s.rosters.Roster(ctx, gameweek)
		if err != nil {
			return dataUnavailable(SourceRoster, gameweek, err)
		}
		if roster.Len() == 0 {
			return &DataUnavailableError{Source: SourceRoster, Gameweek: gameweek, Err: errors.New("empty roster")}
		}
		snapshot.roster = roster
		return nil
	})
	p.Go(func(ctx context.Context) error {
		squad, err := s.squads.Squad(ctx, accountID, gameweek)
		if err != nil {
			if errors.Is(err, fantasy.ErrMalformedSquad) {
				return err
			}
			return dataUnavailable(SourceSquad, gameweek, err)
		}
		snapshot.squad = squad
		return nil
	})
	if s.fixtures != nil {
		p.Go(func(ctx context.Context) error {
			items, err := s.fixtures.Fixtures(ctx, gameweek)
			if err != nil {
				return dataUnavailable(SourceFixtures, gameweek, err)
			}
			fixture.SortByKickoff(items)
			snapshot.fixtures = items
			return nil
		})
	}
	if s.managers != nil {
		p.Go(func(ctx context.Context) error {
			manager, err := s.managers.Manager(ctx, accountID)
			if err != nil {
				s.logger.WarnContext(ctx, "manager summary unavailable", "error", err)
				return nil
			}
			manager.AccountID = accountID
			snapshot.manager = manager
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		span.RecordError(err)
		return recommendSnapshot{}, err
	}
	return snapshot, nil
}

func (s *RecommendService) generateNarrative(ctx context.Context, req recommendation.NarrativeRequest) (string, bool) {
	if s.narrative == nil {
		return recommendation.FallbackNarrative, true
	}

	text, err := s.narrative.Generate(ctx, req)
	if err != nil || text == "" {
		s.logger.WarnContext(ctx, "narrative generation failed, using fallback",
			"persona", req.Persona,
			"error", err,
		)
		return recommendation.FallbackNarrative, true
	}
	return text, false
}

// Latest returns the most recent stored recommendation for an account and gameweek.
func (s *RecommendService) Latest(ctx context.Context, accountID int64, gameweek int) (recommendation.Recommendation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendService.Latest")
	defer span.End()

	if accountID <= 0 || gameweek <= 0 {
		return recommendation.Recommendation{}, fmt.Errorf("%w: account_id and gameweek must be greater than zero", ErrInvalidInput)
	}
	if s.repo == nil {
		return recommendation.Recommendation{}, fmt.Errorf("%w: recommendation history is disabled", ErrDependencyUnavailable)
	}

	item, exists, err := s.repo.GetLatest(ctx, accountID, gameweek)
	if err != nil {
		return recommendation.Recommendation{}, fmt.Errorf("get latest recommendation: %w", err)
	}
	if !exists {
		return recommendation.Recommendation{}, fmt.Errorf("%w: no recommendation for account=%d gw=%d", ErrNotFound, accountID, gameweek)
	}
	return item, nil
}

// ScoreAssets returns the weights of the requested assets in a gameweek roster.
func (s *RecommendService) ScoreAssets(ctx context.Context, gameweek int, assetIDs []int64) ([]recommendation.ScoredAsset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendService.ScoreAssets")
	defer span.End()

	if len(assetIDs) == 0 {
		return nil, fmt.Errorf("%w: asset_ids are required", ErrInvalidInput)
	}
	gameweek, err := s.resolveGameweek(ctx, gameweek)
	if err != nil {
		return nil, err
	}

	roster, err := s.rosters.Roster(ctx, gameweek)
	if err != nil {
		return nil, dataUnavailable(SourceRoster, gameweek, err)
	}

	items, missing := roster.Lookup(assetIDs)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: assets %v are not in the gw=%d roster", ErrNotFound, missing, gameweek)
	}
	return s.engine.Weights().ScoreAll(items), nil
}

func outcomeOf(item recommendation.Recommendation, err error) string {
	switch {
	case err == nil && item.NarrativeFallback:
		return OutcomeNarrativeMiss
	case err == nil:
		return OutcomeOK
	case errors.Is(err, recommendation.ErrNoCandidate):
		return OutcomeNoCandidate
	case errors.Is(err, fantasy.ErrMalformedSquad):
		return OutcomeMalformed
	case errors.Is(err, ErrDataUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, ErrInvalidInput):
		return OutcomeInvalidInput
	default:
		return "error"
	}
}
