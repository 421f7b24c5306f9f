package recommendation

import "github.com/riskibarqy/fpl-advisor/internal/domain/asset"

// Weights holds the heuristic constants behind out and in weights.
type Weights struct {
	OutBase            float64
	InBase             float64
	FormMultiplier     float64
	GoalkeeperDiscount float64
}

func DefaultWeights() Weights {
	return Weights{
		OutBase:            100,
		InBase:             1,
		FormMultiplier:     10,
		GoalkeeperDiscount: 10,
	}
}

// ScoredAsset is a working copy of an asset with its derived weights.
type ScoredAsset struct {
	asset.Asset
	OutWeight float64
	InWeight  float64
}

// OutWeight is the removal priority of a held asset. Higher means drop first.
func (w Weights) OutWeight(a asset.Asset) float64 {
	value := w.OutBase - a.FixtureDiff - w.FormMultiplier*a.Form
	if a.Position == asset.PositionGoalkeeper {
		value -= w.GoalkeeperDiscount
	}
	return clampZero(value)
}

// InWeight is the attractiveness of a replacement candidate.
func (w Weights) InWeight(a asset.Asset) float64 {
	return clampZero(w.InBase + a.FixtureDiff + w.FormMultiplier*a.Form)
}

func (w Weights) Score(a asset.Asset) ScoredAsset {
	return ScoredAsset{
		Asset:     a,
		OutWeight: w.OutWeight(a),
		InWeight:  w.InWeight(a),
	}
}

func (w Weights) ScoreAll(assets []asset.Asset) []ScoredAsset {
	out := make([]ScoredAsset, 0, len(assets))
	for _, item := range assets {
		out = append(out, w.Score(item))
	}
	return out
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
