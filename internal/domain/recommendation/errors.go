package recommendation

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
)

var ErrNoCandidate = errors.New("no valid replacement found")

// Constraint names the selector filter that removed the last candidate.
type Constraint string

const (
	ConstraintPositionExhausted Constraint = "position_exhausted"
	ConstraintAllTeamsSaturated Constraint = "all_teams_saturated"
	ConstraintBudgetExhausted   Constraint = "budget_exhausted"
)

func (c Constraint) Message() string {
	switch c {
	case ConstraintPositionExhausted:
		return "no other asset is available at this position"
	case ConstraintAllTeamsSaturated:
		return "every candidate plays for a team already at the squad limit"
	case ConstraintBudgetExhausted:
		return "every candidate costs more than the outgoing asset"
	default:
		return string(c)
	}
}

type NoCandidateError struct {
	OutAssetID int64
	Position   asset.Position
	Budget     int64
	Constraint Constraint
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("%s: %s (out=%d position=%s budget=%d)", ErrNoCandidate, e.Constraint, e.OutAssetID, e.Position, e.Budget)
}

func (e *NoCandidateError) Is(target error) bool {
	return target == ErrNoCandidate
}
