package fpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fpl-advisor/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
)

// PicksGameweek is the gameweek whose picks describe the squad going into gameweek.
func PicksGameweek(gameweek int) int {
	if gameweek-1 < 1 {
		return gameweek
	}
	return gameweek - 1
}

// Squad returns the squad an entry held at the previous deadline.
func (c *Client) Squad(ctx context.Context, accountID int64, gameweek int) (fantasy.Squad, error) {
	if accountID <= 0 || gameweek <= 0 {
		return fantasy.Squad{}, fmt.Errorf("account id and gameweek must be greater than zero")
	}

	picksGW := PicksGameweek(gameweek)
	var payload picksPayload
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", accountID, picksGW)
	if err := c.doJSON(ctx, path, nil, &payload); err != nil {
		return fantasy.Squad{}, fmt.Errorf("fetch picks entry=%d gw=%d: %w", accountID, picksGW, err)
	}

	squad := fantasy.Squad{
		AccountID: accountID,
		Gameweek:  gameweek,
		AssetIDs:  make([]int64, 0, len(payload.Picks)),
	}
	for _, pick := range payload.Picks {
		squad.AssetIDs = append(squad.AssetIDs, pick.Element)
		if pick.IsCaptain {
			squad.CaptainID = pick.Element
		}
		if pick.IsViceCaptain {
			squad.ViceCaptainID = pick.Element
		}
	}
	return squad, nil
}

// Manager returns the public entry summary.
func (c *Client) Manager(ctx context.Context, accountID int64) (recommendation.ManagerSummary, error) {
	if accountID <= 0 {
		return recommendation.ManagerSummary{}, fmt.Errorf("account id must be greater than zero")
	}

	var payload entryPayload
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/", accountID), nil, &payload); err != nil {
		return recommendation.ManagerSummary{}, fmt.Errorf("fetch entry=%d: %w", accountID, err)
	}

	return recommendation.ManagerSummary{
		AccountID:      accountID,
		ManagerName:    strings.TrimSpace(payload.PlayerFirstName + " " + payload.PlayerLastName),
		TeamName:       strings.TrimSpace(payload.Name),
		OverallRank:    payload.SummaryOverallRank,
		OverallPoints:  payload.SummaryOverallPoints,
		GameweekPoints: payload.SummaryEventPoints,
		TeamValue:      payload.LastDeadlineValue,
	}, nil
}
