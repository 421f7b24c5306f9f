package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
)

// RecommendationRepository keeps the latest recommendation per account and
// gameweek. Used when no database is configured.
type RecommendationRepository struct {
	mu    sync.RWMutex
	items map[string]recommendation.Recommendation
}

func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{items: make(map[string]recommendation.Recommendation)}
}

func (r *RecommendationRepository) Save(_ context.Context, item recommendation.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recommendationKey(item.AccountID, item.Gameweek)
	if current, ok := r.items[key]; ok && current.CreatedAt.After(item.CreatedAt) {
		return nil
	}
	r.items[key] = cloneRecommendation(item)
	return nil
}

func (r *RecommendationRepository) GetLatest(_ context.Context, accountID int64, gameweek int) (recommendation.Recommendation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[recommendationKey(accountID, gameweek)]
	if !ok {
		return recommendation.Recommendation{}, false, nil
	}
	return cloneRecommendation(item), true, nil
}

func recommendationKey(accountID int64, gameweek int) string {
	return strconv.FormatInt(accountID, 10) + "::" + strconv.Itoa(gameweek)
}

func cloneRecommendation(item recommendation.Recommendation) recommendation.Recommendation {
	copied := item
	copied.Starting = append([]recommendation.ScoredAsset(nil), item.Starting...)
	copied.Bench = append([]recommendation.ScoredAsset(nil), item.Bench...)
	copied.UpcomingFixtures = append(copied.UpcomingFixtures[:0:0], item.UpcomingFixtures...)
	return copied
}
