package recommendation

import (
	"sort"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fantasy"
)

// Engine runs scoring, transfer selection and partitioning over one snapshot.
// Weight ties are always broken by the lowest asset id.
type Engine struct {
	rules   fantasy.Rules
	weights Weights
}

func NewEngine(rules fantasy.Rules, weights Weights) *Engine {
	return &Engine{rules: rules, weights: weights}
}

func NewDefaultEngine() *Engine {
	return NewEngine(fantasy.DefaultRules(), DefaultWeights())
}

func (e *Engine) Rules() fantasy.Rules {
	return e.rules
}

func (e *Engine) Weights() Weights {
	return e.weights
}

// Plan selects a transfer, applies it and partitions the resulting squad.
func (e *Engine) Plan(squad []asset.Asset, pool []asset.Asset) (Transfer, Lineup, error) {
	if err := fantasy.ValidateSquad(squad, e.rules); err != nil {
		return Transfer{}, Lineup{}, err
	}

	transfer, err := e.SelectTransfer(squad, pool)
	if err != nil {
		return Transfer{}, Lineup{}, err
	}

	lineup, err := e.Partition(ApplyTransfer(e.weights.ScoreAll(squad), transfer))
	if err != nil {
		return Transfer{}, Lineup{}, err
	}

	return transfer, lineup, nil
}

// SelectTransfer picks the held asset with the highest out weight and the
// best affordable replacement at the same position that keeps every team
// within the quota.
func (e *Engine) SelectTransfer(squad []asset.Asset, pool []asset.Asset) (Transfer, error) {
	if len(squad) == 0 {
		return Transfer{}, fantasy.NewMalformedSquadError(fantasy.MalformedReasonSize, "squad is empty")
	}

	scored := e.weights.ScoreAll(squad)
	out := scored[0]
	for _, item := range scored[1:] {
		if item.OutWeight > out.OutWeight || (item.OutWeight == out.OutWeight && item.ID < out.ID) {
			out = item
		}
	}

	budget := out.Cost
	position := out.Position

	saturated := make(map[int64]struct{})
	for teamID, count := range fantasy.TeamCounts(squad, out.ID) {
		if count >= e.rules.MaxPlayersPerTeam {
			saturated[teamID] = struct{}{}
		}
	}

	held := make(map[int64]struct{}, len(squad))
	for _, item := range squad {
		held[item.ID] = struct{}{}
	}

	var positional, unsaturated, affordable []asset.Asset
	for _, candidate := range pool {
		if candidate.Position != position {
			continue
		}
		if _, ok := held[candidate.ID]; ok {
			continue
		}
		positional = append(positional, candidate)

		if _, ok := saturated[candidate.TeamID]; ok {
			continue
		}
		unsaturated = append(unsaturated, candidate)

		if candidate.Cost > budget {
			continue
		}
		affordable = append(affordable, candidate)
	}

	if len(affordable) == 0 {
		constraint := ConstraintBudgetExhausted
		switch {
		case len(positional) == 0:
			constraint = ConstraintPositionExhausted
		case len(unsaturated) == 0:
			constraint = ConstraintAllTeamsSaturated
		}
		return Transfer{}, &NoCandidateError{
			OutAssetID: out.ID,
			Position:   position,
			Budget:     budget,
			Constraint: constraint,
		}
	}

	in := e.weights.Score(affordable[0])
	for _, candidate := range affordable[1:] {
		scoredCandidate := e.weights.Score(candidate)
		if scoredCandidate.InWeight > in.InWeight || (scoredCandidate.InWeight == in.InWeight && scoredCandidate.ID < in.ID) {
			in = scoredCandidate
		}
	}

	return Transfer{Out: out, In: in}, nil
}

// ApplyTransfer returns a copy of squad with the outgoing asset replaced in place.
func ApplyTransfer(squad []ScoredAsset, transfer Transfer) []ScoredAsset {
	out := make([]ScoredAsset, 0, len(squad))
	for _, item := range squad {
		if item.ID == transfer.Out.ID {
			out = append(out, transfer.In)
			continue
		}
		out = append(out, item)
	}
	return out
}

// Partition splits a full squad into starters and bench, lowest out weight first.
func (e *Engine) Partition(squad []ScoredAsset) (Lineup, error) {
	plain := make([]asset.Asset, 0, len(squad))
	for _, item := range squad {
		plain = append(plain, item.Asset)
	}
	if err := fantasy.ValidateSquad(plain, e.rules); err != nil {
		return Lineup{}, err
	}

	var goalkeepers, outfield []ScoredAsset
	for _, item := range squad {
		if item.Position == asset.PositionGoalkeeper {
			goalkeepers = append(goalkeepers, item)
			continue
		}
		outfield = append(outfield, item)
	}
	sortByOutWeight(goalkeepers)
	sortByOutWeight(outfield)

	outfieldStarters := e.rules.StartingSize - 1
	starting := make([]ScoredAsset, 0, e.rules.StartingSize)
	bench := make([]ScoredAsset, 0, e.rules.BenchSize())

	starting = append(starting, goalkeepers[0])
	bench = append(bench, goalkeepers[1:]...)
	starting = append(starting, outfield[:outfieldStarters]...)
	bench = append(bench, outfield[outfieldStarters:]...)

	lineup := Lineup{}
	for _, pos := range []asset.Position{asset.PositionDefender, asset.PositionMidfielder, asset.PositionForward} {
		minimum := e.rules.StarterMinByPosition[pos]
		for countPosition(starting, pos) < minimum {
			var ok bool
			starting, bench, ok = e.promote(starting, bench, pos)
			if !ok {
				return Lineup{}, fantasy.NewMalformedSquadError(fantasy.MalformedReasonComposition, "cannot field %d starter(s) at %s", minimum, pos)
			}
			lineup.FallbackApplied = true
		}
	}

	captainPool := make([]ScoredAsset, 0, len(starting))
	for _, item := range starting {
		if item.Position != asset.PositionGoalkeeper {
			captainPool = append(captainPool, item)
		}
	}
	sortByOutWeight(captainPool)
	lineup.Captain = captainPool[0]
	lineup.ViceCaptain = captainPool[1]

	sortByPosition(starting)
	sortByPosition(bench)
	lineup.Starting = starting
	lineup.Bench = bench

	return lineup, nil
}

// promote moves the best bench asset at pos into the starters and demotes the
// weakest starting midfielder, or the weakest outfield starter whose position
// stays at or above its own minimum.
func (e *Engine) promote(starting, bench []ScoredAsset, pos asset.Position) ([]ScoredAsset, []ScoredAsset, bool) {
	inIdx := -1
	for i, item := range bench {
		if item.Position != pos {
			continue
		}
		if inIdx == -1 || lessByOutWeight(item, bench[inIdx]) {
			inIdx = i
		}
	}
	if inIdx == -1 {
		return starting, bench, false
	}

	outIdx := weakestStarter(starting, func(item ScoredAsset) bool {
		return item.Position == asset.PositionMidfielder &&
			countPosition(starting, asset.PositionMidfielder)-1 >= e.rules.StarterMinByPosition[asset.PositionMidfielder]
	})
	if outIdx == -1 {
		outIdx = weakestStarter(starting, func(item ScoredAsset) bool {
			if item.Position == asset.PositionGoalkeeper || item.Position == pos {
				return false
			}
			return countPosition(starting, item.Position)-1 >= e.rules.StarterMinByPosition[item.Position]
		})
	}
	if outIdx == -1 {
		return starting, bench, false
	}

	incoming := bench[inIdx]
	outgoing := starting[outIdx]
	starting[outIdx] = incoming
	bench[inIdx] = outgoing
	return starting, bench, true
}

func weakestStarter(starting []ScoredAsset, eligible func(ScoredAsset) bool) int {
	idx := -1
	for i, item := range starting {
		if !eligible(item) {
			continue
		}
		if idx == -1 || lessByOutWeight(starting[idx], item) {
			idx = i
		}
	}
	return idx
}

func countPosition(items []ScoredAsset, pos asset.Position) int {
	count := 0
	for _, item := range items {
		if item.Position == pos {
			count++
		}
	}
	return count
}

func lessByOutWeight(left, right ScoredAsset) bool {
	if left.OutWeight != right.OutWeight {
		return left.OutWeight < right.OutWeight
	}
	return left.ID < right.ID
}

func sortByOutWeight(items []ScoredAsset) {
	sort.SliceStable(items, func(i, j int) bool {
		return lessByOutWeight(items[i], items[j])
	})
}

func sortByPosition(items []ScoredAsset) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Position.Order() != items[j].Position.Order() {
			return items[i].Position.Order() < items[j].Position.Order()
		}
		return lessByOutWeight(items[i], items[j])
	})
}
