package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fpl-advisor/internal/usecase"
)

type batchRecommendationRequest struct {
	AccountIDs []int64 `json:"account_ids" validate:"required,min=1,max=500,dive,gt=0"`
	Gameweek   int     `json:"gameweek" validate:"gte=0,lte=38"`
	Persona    string  `json:"persona" validate:"omitempty,oneof=pundit analyst veteran contrarian"`
	Workers    int     `json:"workers" validate:"gte=0,lte=32"`
}

type snapshotJobRequest struct {
	Gameweek int `json:"gameweek" validate:"gte=0,lte=38"`
}

func (h *Handler) RunRecommendationBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecommendationBatch")
	defer span.End()

	if h.batch == nil {
		writeError(ctx, w, fmt.Errorf("%w: batch recommendations are not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req batchRecommendationRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.batch.RecommendMany(ctx, usecase.BatchInput{
		AccountIDs: req.AccountIDs,
		Gameweek:   req.Gameweek,
		Persona:    req.Persona,
		Workers:    req.Workers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run recommendation batch failed", "accounts", len(req.AccountIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSnapshotJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSnapshotJob")
	defer span.End()

	if h.snapshots == nil {
		writeError(ctx, w, fmt.Errorf("%w: snapshot storage is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req snapshotJobRequest
	if err := decodeJSONBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.snapshots.Publish(ctx, req.Gameweek)
	if err != nil {
		h.logger.WarnContext(ctx, "run snapshot job failed", "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "snapshot job completed",
		"gameweek", result.Gameweek,
		"assets", result.AssetCount,
		"fixtures", result.FixtureCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
