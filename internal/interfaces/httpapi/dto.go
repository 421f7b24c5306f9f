package httpapi

import (
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
)

type scoredAssetDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	TeamID      int64   `json:"team_id"`
	TeamName    string  `json:"team_name"`
	Cost        int64   `json:"cost"`
	Form        float64 `json:"form"`
	FixtureDiff float64 `json:"fixture_diff"`
	TotalPoints int     `json:"total_points"`
	OutWeight   float64 `json:"out_weight"`
	InWeight    float64 `json:"in_weight"`
}

type transferDTO struct {
	Out scoredAssetDTO `json:"out"`
	In  scoredAssetDTO `json:"in"`
}

type managerDTO struct {
	AccountID      int64  `json:"account_id"`
	ManagerName    string `json:"manager_name,omitempty"`
	TeamName       string `json:"team_name,omitempty"`
	OverallRank    int64  `json:"overall_rank,omitempty"`
	OverallPoints  int    `json:"overall_points"`
	GameweekPoints int    `json:"gameweek_points"`
	TeamValue      int64  `json:"team_value,omitempty"`
}

type fixtureDTO struct {
	ID             int64     `json:"id"`
	Gameweek       int       `json:"gameweek"`
	HomeTeamID     int64     `json:"home_team_id"`
	AwayTeamID     int64     `json:"away_team_id"`
	HomeTeam       string    `json:"home_team"`
	AwayTeam       string    `json:"away_team"`
	HomeStrength   int       `json:"home_strength"`
	AwayStrength   int       `json:"away_strength"`
	HomeDifficulty int       `json:"home_difficulty"`
	AwayDifficulty int       `json:"away_difficulty"`
	KickoffAt      time.Time `json:"kickoff_at"`
}

type recommendationDTO struct {
	ID                string           `json:"id"`
	AccountID         int64            `json:"account_id"`
	Gameweek          int              `json:"gameweek"`
	Persona           string           `json:"persona"`
	Manager           managerDTO       `json:"manager"`
	Transfer          transferDTO      `json:"transfer"`
	Starting          []scoredAssetDTO `json:"starting"`
	Bench             []scoredAssetDTO `json:"bench"`
	Captain           scoredAssetDTO   `json:"captain"`
	ViceCaptain       scoredAssetDTO   `json:"vice_captain"`
	UpcomingFixtures  []fixtureDTO     `json:"upcoming_fixtures"`
	Narrative         string           `json:"narrative"`
	NarrativeFallback bool             `json:"narrative_fallback"`
	CreatedAt         time.Time        `json:"created_at"`
}

func scoredAssetToDTO(item recommendation.ScoredAsset) scoredAssetDTO {
	return scoredAssetDTO{
		ID:          item.ID,
		Name:        item.Name,
		Position:    string(item.Position),
		TeamID:      item.TeamID,
		TeamName:    item.TeamName,
		Cost:        item.Cost,
		Form:        item.Form,
		FixtureDiff: item.FixtureDiff,
		TotalPoints: item.TotalPoints,
		OutWeight:   item.OutWeight,
		InWeight:    item.InWeight,
	}
}

func scoredAssetsToDTO(items []recommendation.ScoredAsset) []scoredAssetDTO {
	out := make([]scoredAssetDTO, 0, len(items))
	for _, item := range items {
		out = append(out, scoredAssetToDTO(item))
	}
	return out
}

func fixtureToDTO(item fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:             item.ID,
		Gameweek:       item.Gameweek,
		HomeTeamID:     item.HomeTeamID,
		AwayTeamID:     item.AwayTeamID,
		HomeTeam:       item.HomeTeam,
		AwayTeam:       item.AwayTeam,
		HomeStrength:   item.HomeStrength,
		AwayStrength:   item.AwayStrength,
		HomeDifficulty: item.HomeDifficulty,
		AwayDifficulty: item.AwayDifficulty,
		KickoffAt:      item.KickoffAt,
	}
}

func recommendationToDTO(item recommendation.Recommendation) recommendationDTO {
	fixtures := make([]fixtureDTO, 0, len(item.UpcomingFixtures))
	for _, f := range item.UpcomingFixtures {
		fixtures = append(fixtures, fixtureToDTO(f))
	}

	return recommendationDTO{
		ID:        item.ID,
		AccountID: item.AccountID,
		Gameweek:  item.Gameweek,
		Persona:   string(item.Persona),
		Manager: managerDTO{
			AccountID:      item.Manager.AccountID,
			ManagerName:    item.Manager.ManagerName,
			TeamName:       item.Manager.TeamName,
			OverallRank:    item.Manager.OverallRank,
			OverallPoints:  item.Manager.OverallPoints,
			GameweekPoints: item.Manager.GameweekPoints,
			TeamValue:      item.Manager.TeamValue,
		},
		Transfer: transferDTO{
			Out: scoredAssetToDTO(item.Transfer.Out),
			In:  scoredAssetToDTO(item.Transfer.In),
		},
		Starting:          scoredAssetsToDTO(item.Starting),
		Bench:             scoredAssetsToDTO(item.Bench),
		Captain:           scoredAssetToDTO(item.Captain),
		ViceCaptain:       scoredAssetToDTO(item.ViceCaptain),
		UpcomingFixtures:  fixtures,
		Narrative:         item.Narrative,
		NarrativeFallback: item.NarrativeFallback,
		CreatedAt:         item.CreatedAt,
	}
}
