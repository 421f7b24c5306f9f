package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
)

const (
	batchStatusOK     = "ok"
	batchStatusFailed = "failed"

	defaultBatchWorkers = 4
	maxBatchWorkers     = 32
	maxBatchAccounts    = 500
)

type recommender interface {
	Recommend(ctx context.Context, input RecommendInput) (recommendation.Recommendation, error)
}

type BatchInput struct {
	AccountIDs []int64
	Gameweek   int
	Persona    string
	Workers    int
}

type BatchResult struct {
	Gameweek     int               `json:"gameweek"`
	WorkerCount  int               `json:"worker_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Items        []BatchItemResult `json:"items"`
}

type BatchItemResult struct {
	AccountID        int64  `json:"account_id"`
	Status           string `json:"status"`
	RecommendationID string `json:"recommendation_id,omitempty"`
	TransferOut      int64  `json:"transfer_out,omitempty"`
	TransferIn       int64  `json:"transfer_in,omitempty"`
	Error            string `json:"error,omitempty"`
	DurationMs       int64  `json:"duration_ms"`
}

// BatchService runs recommendations for many accounts on a bounded worker pool.
type BatchService struct {
	recommender    recommender
	defaultWorkers int
	logger         *logging.Logger
}

func NewBatchService(recommender recommender, defaultWorkers int, logger *logging.Logger) *BatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BatchService{
		recommender:    recommender,
		defaultWorkers: defaultWorkers,
		logger:         logger,
	}
}

func (s *BatchService) RecommendMany(ctx context.Context, input BatchInput) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchService.RecommendMany")
	defer span.End()
	ctx = logging.WithFields(ctx, "batch_gameweek", input.Gameweek)

	accountIDs, err := normalizeAccountIDs(input.AccountIDs)
	if err != nil {
		return BatchResult{}, err
	}
	if input.Gameweek < 0 {
		return BatchResult{}, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}
	if _, err := recommendation.ParsePersona(input.Persona); err != nil {
		return BatchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	requested := input.Workers
	if requested <= 0 {
		requested = s.defaultWorkers
	}
	workerCount := normalizeBatchWorkerCount(requested, len(accountIDs))

	result := BatchResult{
		Gameweek:    input.Gameweek,
		WorkerCount: workerCount,
		Items:       make([]BatchItemResult, 0, len(accountIDs)),
	}

	results := make(chan BatchItemResult, len(accountIDs))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, accountID := range accountIDs {
		accountID := accountID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := BatchItemResult{AccountID: accountID}

			item, err := s.recommender.Recommend(ctx, RecommendInput{
				AccountID: accountID,
				Gameweek:  input.Gameweek,
				Persona:   input.Persona,
			})
			if err != nil {
				row.Status = batchStatusFailed
				row.Error = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = batchStatusOK
				row.RecommendationID = item.ID
				row.TransferOut = item.Transfer.Out.ID
				row.TransferIn = item.Transfer.In.ID
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return BatchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Items = append(result.Items, row)
	}
	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].AccountID < result.Items[j].AccountID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "batch recommendations finished",
		"accounts", len(accountIDs),
		"workers", workerCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func normalizeAccountIDs(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: account_ids are required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: account id must be greater than zero: %d", ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) > maxBatchAccounts {
		return nil, fmt.Errorf("%w: at most %d accounts per batch", ErrInvalidInput, maxBatchAccounts)
	}
	return out, nil
}

func normalizeBatchWorkerCount(requested, taskCount int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	if workers > maxBatchWorkers {
		workers = maxBatchWorkers
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	if workers <= 0 {
		workers = 1
	}
	return workers
}
