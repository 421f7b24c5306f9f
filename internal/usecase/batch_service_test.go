package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecommender struct {
	mu     sync.Mutex
	calls  []RecommendInput
	failOn map[int64]error
}

func (f *fakeRecommender) Recommend(_ context.Context, input RecommendInput) (recommendation.Recommendation, error) {
	f.mu.Lock()
	f.calls = append(f.calls, input)
	f.mu.Unlock()

	if err, ok := f.failOn[input.AccountID]; ok {
		return recommendation.Recommendation{}, err
	}
	return recommendation.Recommendation{ID: "rec", AccountID: input.AccountID}, nil
}

func TestBatchService_RecommendMany(t *testing.T) {
	t.Parallel()

	recommender := &fakeRecommender{failOn: map[int64]error{
		3: &recommendation.NoCandidateError{Constraint: recommendation.ConstraintBudgetExhausted},
	}}
	service := NewBatchService(recommender, 2, logging.NewNop())

	got, err := service.RecommendMany(context.Background(), BatchInput{
		AccountIDs: []int64{5, 3, 1, 5},
		Gameweek:   7,
		Persona:    "veteran",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, got.WorkerCount)
	assert.Equal(t, 2, got.SuccessCount)
	assert.Equal(t, 1, got.FailedCount)
	require.Len(t, got.Items, 3)
	assert.Equal(t, int64(1), got.Items[0].AccountID)
	assert.Equal(t, int64(3), got.Items[1].AccountID)
	assert.Equal(t, batchStatusFailed, got.Items[1].Status)
	assert.Contains(t, got.Items[1].Error, "budget_exhausted")
	assert.Equal(t, batchStatusOK, got.Items[2].Status)
	assert.Len(t, recommender.calls, 3)
	for _, call := range recommender.calls {
		assert.Equal(t, 7, call.Gameweek)
		assert.Equal(t, "veteran", call.Persona)
	}
}

func TestBatchService_RecommendMany_InvalidInput(t *testing.T) {
	t.Parallel()

	service := NewBatchService(&fakeRecommender{}, 2, logging.NewNop())

	tests := []BatchInput{
		{},
		{AccountIDs: []int64{0}},
		{AccountIDs: []int64{1}, Gameweek: -2},
		{AccountIDs: []int64{1}, Persona: "critic"},
	}
	for _, input := range tests {
		_, err := service.RecommendMany(context.Background(), input)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestNormalizeBatchWorkerCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultBatchWorkers, normalizeBatchWorkerCount(0, 100))
	assert.Equal(t, maxBatchWorkers, normalizeBatchWorkerCount(1000, 100))
	assert.Equal(t, 3, normalizeBatchWorkerCount(8, 3))
}
