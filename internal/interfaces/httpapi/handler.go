package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"github.com/riskibarqy/fpl-advisor/internal/usecase"
)

type RecommendationService interface {
	Recommend(ctx context.Context, input usecase.RecommendInput) (recommendation.Recommendation, error)
	Latest(ctx context.Context, accountID int64, gameweek int) (recommendation.Recommendation, error)
	ScoreAssets(ctx context.Context, gameweek int, assetIDs []int64) ([]recommendation.ScoredAsset, error)
}

type BatchRunner interface {
	RecommendMany(ctx context.Context, input usecase.BatchInput) (usecase.BatchResult, error)
}

type SnapshotRunner interface {
	Publish(ctx context.Context, gameweek int) (usecase.SnapshotResult, error)
}

type Handler struct {
	recommendations RecommendationService
	batch           BatchRunner
	snapshots       SnapshotRunner
	logger          *logging.Logger
	validator       *validator.Validate
}

// NewHandler wires the HTTP handlers. batch and snapshots may be nil, in which
// case the matching internal job answers with dependencyUnavailable.
func NewHandler(
	recommendations RecommendationService,
	batch BatchRunner,
	snapshots SnapshotRunner,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		recommendations: recommendations,
		batch:           batch,
		snapshots:       snapshots,
		logger:          logger,
		validator:       validator.New(),
	}
}

type createRecommendationRequest struct {
	AccountID int64  `json:"account_id" validate:"required,gt=0"`
	Gameweek  int    `json:"gameweek" validate:"gte=0,lte=38"`
	Persona   string `json:"persona" validate:"omitempty,oneof=pundit analyst veteran contrarian"`
}

type scoreAssetsRequest struct {
	Gameweek int     `json:"gameweek" validate:"gte=0,lte=38"`
	AssetIDs []int64 `json:"asset_ids" validate:"required,min=1,max=100,dive,gt=0"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRecommendation")
	defer span.End()

	var req createRecommendationRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.recommendations.Recommend(ctx, usecase.RecommendInput{
		AccountID: req.AccountID,
		Gameweek:  req.Gameweek,
		Persona:   req.Persona,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create recommendation failed",
			"account_id", req.AccountID,
			"gameweek", req.Gameweek,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, recommendationToDTO(item))
}

func (h *Handler) GetLatestRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLatestRecommendation")
	defer span.End()

	accountID, err := parsePositiveInt(r.PathValue("accountID"), "accountID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gameweek, err := parsePositiveInt(r.PathValue("gameweek"), "gameweek")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.recommendations.Latest(ctx, accountID, int(gameweek))
	if err != nil {
		if !errors.Is(err, usecase.ErrNotFound) {
			h.logger.WarnContext(ctx, "get latest recommendation failed", "account_id", accountID, "gameweek", gameweek, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recommendationToDTO(item))
}

func (h *Handler) ScoreAssets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreAssets")
	defer span.End()

	var req scoreAssetsRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.recommendations.ScoreAssets(ctx, req.Gameweek, req.AssetIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "score assets failed", "gameweek", req.Gameweek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoredAssetsToDTO(items))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

const maxRequestBodyBytes = 1 << 20

// decodeJSONBody rejects unknown fields. An empty body is accepted only when
// allowEmpty is set.
func decodeJSONBody(r *http.Request, out any, allowEmpty bool) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := strictJSON.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parsePositiveInt(raw, name string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
