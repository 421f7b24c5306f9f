package fpl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
)

func (c *Client) bootstrap(ctx context.Context) (bootstrapPayload, error) {
	var payload bootstrapPayload
	if err := c.doJSON(ctx, "/bootstrap-static/", nil, &payload); err != nil {
		return bootstrapPayload{}, fmt.Errorf("fetch bootstrap-static: %w", err)
	}
	return payload, nil
}

// Fixtures returns the fixture slate of a gameweek with team strengths attached.
func (c *Client) Fixtures(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	if gameweek <= 0 {
		return nil, fmt.Errorf("gameweek must be greater than zero")
	}

	boot, err := c.bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	return c.fixtures(ctx, gameweek, indexTeams(boot.Teams))
}

func (c *Client) fixtures(ctx context.Context, gameweek int, teams map[int64]teamPayload) ([]fixture.Fixture, error) {
	var payload []fixturePayload
	query := url.Values{"event": []string{strconv.Itoa(gameweek)}}
	if err := c.doJSON(ctx, "/fixtures/", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch fixtures gw=%d: %w", gameweek, err)
	}

	out := make([]fixture.Fixture, 0, len(payload))
	for _, item := range payload {
		home, okHome := teams[item.TeamH]
		away, okAway := teams[item.TeamA]
		if !okHome || !okAway {
			c.logger.WarnContext(ctx, "skip fixture with unknown team", "fixture_id", item.ID, "team_h", item.TeamH, "team_a", item.TeamA)
			continue
		}

		out = append(out, fixture.Fixture{
			ID:             item.ID,
			Gameweek:       gameweek,
			HomeTeamID:     home.ID,
			AwayTeamID:     away.ID,
			HomeTeam:       home.Name,
			AwayTeam:       away.Name,
			HomeStrength:   home.StrengthOverallHome,
			AwayStrength:   away.StrengthOverallAway,
			HomeDifficulty: item.TeamHDifficulty,
			AwayDifficulty: item.TeamADifficulty,
			KickoffAt:      parseKickoff(item.KickoffTime),
		})
	}
	fixture.SortByKickoff(out)
	return out, nil
}

// Roster builds the asset snapshot of a gameweek. Form is parsed here and
// fixture diff is the mean over the team's fixtures, 0 for a blank gameweek.
func (c *Client) Roster(ctx context.Context, gameweek int) (asset.Roster, error) {
	if gameweek <= 0 {
		return asset.Roster{}, fmt.Errorf("gameweek must be greater than zero")
	}

	boot, err := c.bootstrap(ctx)
	if err != nil {
		return asset.Roster{}, err
	}
	teams := indexTeams(boot.Teams)

	items, err := c.fixtures(ctx, gameweek, teams)
	if err != nil {
		return asset.Roster{}, err
	}
	difficulty := fixture.TeamDifficulty(items)

	assets := make([]asset.Asset, 0, len(boot.Elements))
	for _, element := range boot.Elements {
		item, ok := c.mapElement(ctx, element, teams, difficulty)
		if !ok {
			continue
		}
		assets = append(assets, item)
	}

	return asset.NewRoster(gameweek, assets), nil
}

func (c *Client) mapElement(ctx context.Context, element elementPayload, teams map[int64]teamPayload, difficulty map[int64]float64) (asset.Asset, bool) {
	position, err := asset.PositionFromElementType(element.ElementType)
	if err != nil {
		// element_type 5 is the managers chip; not a selectable player.
		return asset.Asset{}, false
	}

	item := asset.Asset{
		ID:          element.ID,
		Name:        strings.TrimSpace(element.WebName),
		Position:    position,
		TeamID:      element.Team,
		TeamName:    teams[element.Team].Name,
		Cost:        element.NowCost,
		Form:        asset.ParseForm(element.Form),
		FixtureDiff: difficulty[element.Team],
		TotalPoints: element.TotalPoints,
	}
	if err := item.Validate(); err != nil {
		c.logger.WarnContext(ctx, "skip invalid fpl element", "element_id", element.ID, "error", err)
		return asset.Asset{}, false
	}
	return item, true
}

func indexTeams(items []teamPayload) map[int64]teamPayload {
	out := make(map[int64]teamPayload, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}

func parseKickoff(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}
