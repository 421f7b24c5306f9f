package fixture

import (
	"sort"
	"time"
)

// Fixture is one scheduled match with the strength ratings of both sides.
type Fixture struct {
	ID           int64
	Gameweek     int
	HomeTeamID   int64
	AwayTeamID   int64
	HomeTeam     string
	AwayTeam     string
	HomeStrength int
	AwayStrength int
	// FPL fixture difficulty ratings (1..5).
	HomeDifficulty int
	AwayDifficulty int
	KickoffAt      time.Time
}

// HomeDiff is the home side's strength advantage over the away side.
func (f Fixture) HomeDiff() float64 {
	return float64(f.HomeStrength - f.AwayStrength)
}

func (f Fixture) AwayDiff() float64 {
	return float64(f.AwayStrength - f.HomeStrength)
}

// TeamDifficulty averages each team's diff over its fixtures. Teams absent from
// the slate (blank gameweek) are not present in the result.
func TeamDifficulty(items []Fixture) map[int64]float64 {
	sums := make(map[int64]float64)
	counts := make(map[int64]int)
	for _, item := range items {
		sums[item.HomeTeamID] += item.HomeDiff()
		counts[item.HomeTeamID]++
		sums[item.AwayTeamID] += item.AwayDiff()
		counts[item.AwayTeamID]++
	}

	out := make(map[int64]float64, len(sums))
	for teamID, sum := range sums {
		out[teamID] = sum / float64(counts[teamID])
	}
	return out
}

// SortByKickoff orders fixtures by kickoff, then id.
func SortByKickoff(items []Fixture) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].ID < items[j].ID
	})
}
