package usecase

import (
	"context"
	"time"
)

const (
	OutcomeOK            = "ok"
	OutcomeNoCandidate   = "no_candidate"
	OutcomeMalformed     = "malformed_squad"
	OutcomeUnavailable   = "data_unavailable"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeNarrativeMiss = "narrative_fallback"
)

// Metrics receives recommendation outcomes.
type Metrics interface {
	RecordRecommendation(ctx context.Context, outcome string, elapsed time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordRecommendation(context.Context, string, time.Duration) {}
