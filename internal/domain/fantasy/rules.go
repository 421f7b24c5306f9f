package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
)

var ErrMalformedSquad = errors.New("malformed squad")

const (
	MalformedReasonSize        = "invalid_size"
	MalformedReasonDuplicate   = "duplicate_asset"
	MalformedReasonPosition    = "unknown_position"
	MalformedReasonComposition = "invalid_composition"
	MalformedReasonMissing     = "missing_asset"
)

// MalformedSquadError reports a squad that breaks the upstream composition contract.
type MalformedSquadError struct {
	Reason string
	Detail string
}

func (e *MalformedSquadError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedSquad, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedSquad, e.Reason, e.Detail)
}

func (e *MalformedSquadError) Is(target error) bool {
	return target == ErrMalformedSquad
}

func NewMalformedSquadError(reason, format string, args ...any) error {
	return &MalformedSquadError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Rules stores fantasy squad parameters.
type Rules struct {
	SquadSize             int
	StartingSize          int
	MaxPlayersPerTeam     int
	CompositionByPosition map[asset.Position]int
	StarterMinByPosition  map[asset.Position]int
}

func DefaultRules() Rules {
	return Rules{
		SquadSize:         15,
		StartingSize:      11,
		MaxPlayersPerTeam: 3,
		CompositionByPosition: map[asset.Position]int{
			asset.PositionGoalkeeper: 2,
			asset.PositionDefender:   5,
			asset.PositionMidfielder: 5,
			asset.PositionForward:    3,
		},
		StarterMinByPosition: map[asset.Position]int{
			asset.PositionGoalkeeper: 1,
			asset.PositionForward:    1,
		},
	}
}

func (r Rules) BenchSize() int {
	return r.SquadSize - r.StartingSize
}

// ValidateSquad checks size, uniqueness and position composition.
// Team quota is not checked: upstream squads may already exceed it.
func ValidateSquad(assets []asset.Asset, rules Rules) error {
	if len(assets) != rules.SquadSize {
		return NewMalformedSquadError(MalformedReasonSize, "expected %d, got %d", rules.SquadSize, len(assets))
	}

	positionCounter := make(map[asset.Position]int)
	assetSet := make(map[int64]struct{}, len(assets))

	for _, item := range assets {
		if _, exists := assetSet[item.ID]; exists {
			return NewMalformedSquadError(MalformedReasonDuplicate, "asset=%d", item.ID)
		}
		assetSet[item.ID] = struct{}{}

		if _, ok := asset.AllPositions[item.Position]; !ok {
			return NewMalformedSquadError(MalformedReasonPosition, "asset=%d position=%q", item.ID, item.Position)
		}
		positionCounter[item.Position]++
	}

	for _, pos := range []asset.Position{asset.PositionGoalkeeper, asset.PositionDefender, asset.PositionMidfielder, asset.PositionForward} {
		expected, ok := rules.CompositionByPosition[pos]
		if !ok {
			continue
		}
		if positionCounter[pos] != expected {
			return NewMalformedSquadError(MalformedReasonComposition, "pos=%s expected=%d current=%d", pos, expected, positionCounter[pos])
		}
	}

	return nil
}

// TeamCounts counts assets per team, skipping the excluded id.
func TeamCounts(assets []asset.Asset, excludeID int64) map[int64]int {
	out := make(map[int64]int)
	for _, item := range assets {
		if item.ID == excludeID {
			continue
		}
		out[item.TeamID]++
	}
	return out
}
