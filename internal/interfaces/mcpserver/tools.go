package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/usecase"
)

type assetResult struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	Team      string  `json:"team"`
	Cost      float64 `json:"cost_millions"`
	Form      float64 `json:"form"`
	Diff      float64 `json:"fixture_diff"`
	OutWeight float64 `json:"out_weight"`
	InWeight  float64 `json:"in_weight"`
}

type recommendResult struct {
	ID                string        `json:"id"`
	AccountID         int64         `json:"account_id"`
	Gameweek          int           `json:"gameweek"`
	TransferOut       assetResult   `json:"transfer_out"`
	TransferIn        assetResult   `json:"transfer_in"`
	Starting          []assetResult `json:"starting"`
	Bench             []assetResult `json:"bench"`
	Captain           string        `json:"captain"`
	ViceCaptain       string        `json:"vice_captain"`
	Narrative         string        `json:"narrative"`
	NarrativeFallback bool          `json:"narrative_fallback,omitempty"`
}

func (t *tools) recommendTransfer(ctx context.Context, _ *mcp.CallToolRequest, args RecommendTransferArgs) (*mcp.CallToolResult, any, error) {
	if args.AccountID <= 0 {
		return toolError(fmt.Errorf("account_id is required")), nil, nil
	}

	item, err := t.service.Recommend(ctx, usecase.RecommendInput{
		AccountID: args.AccountID,
		Gameweek:  args.Gameweek,
		Persona:   args.Persona,
	})
	if err != nil {
		t.logger.WarnContext(ctx, "mcp recommend_transfer failed", "account_id", args.AccountID, "error", err)
		return toolError(err), nil, nil
	}

	return toolJSON(recommendResult{
		ID:                item.ID,
		AccountID:         item.AccountID,
		Gameweek:          item.Gameweek,
		TransferOut:       toAssetResult(item.Transfer.Out),
		TransferIn:        toAssetResult(item.Transfer.In),
		Starting:          toAssetResults(item.Starting),
		Bench:             toAssetResults(item.Bench),
		Captain:           item.Captain.Name,
		ViceCaptain:       item.ViceCaptain.Name,
		Narrative:         item.Narrative,
		NarrativeFallback: item.NarrativeFallback,
	})
}

func (t *tools) scoreAssets(ctx context.Context, _ *mcp.CallToolRequest, args ScoreAssetsArgs) (*mcp.CallToolResult, any, error) {
	if len(args.AssetIDs) == 0 {
		return toolError(fmt.Errorf("asset_ids is required")), nil, nil
	}

	items, err := t.service.ScoreAssets(ctx, args.Gameweek, args.AssetIDs)
	if err != nil {
		t.logger.WarnContext(ctx, "mcp score_assets failed", "gameweek", args.Gameweek, "error", err)
		return toolError(err), nil, nil
	}
	return toolJSON(map[string]any{"assets": toAssetResults(items)})
}

func toAssetResult(item recommendation.ScoredAsset) assetResult {
	return assetResult{
		ID:        item.ID,
		Name:      item.Name,
		Position:  string(item.Position),
		Team:      item.TeamName,
		Cost:      float64(item.Cost) / 10,
		Form:      item.Form,
		Diff:      item.FixtureDiff,
		OutWeight: item.OutWeight,
		InWeight:  item.InWeight,
	}
}

func toAssetResults(items []recommendation.ScoredAsset) []assetResult {
	out := make([]assetResult, 0, len(items))
	for _, item := range items {
		out = append(out, toAssetResult(item))
	}
	return out
}
