package recommendation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
)

// Transfer swaps one held asset for one asset outside the squad.
type Transfer struct {
	Out ScoredAsset
	In  ScoredAsset
}

// Lineup is a squad split into starters and bench.
type Lineup struct {
	Starting        []ScoredAsset
	Bench           []ScoredAsset
	Captain         ScoredAsset
	ViceCaptain     ScoredAsset
	FallbackApplied bool
}

// ManagerSummary is the account overview shown next to a recommendation.
type ManagerSummary struct {
	AccountID      int64
	ManagerName    string
	TeamName       string
	OverallRank    int64
	OverallPoints  int
	GameweekPoints int
	TeamValue      int64
}

// ManagerProvider returns the public summary of an account.
type ManagerProvider interface {
	Manager(ctx context.Context, accountID int64) (ManagerSummary, error)
}

type Persona string

const (
	PersonaPundit     Persona = "pundit"
	PersonaAnalyst    Persona = "analyst"
	PersonaVeteran    Persona = "veteran"
	PersonaContrarian Persona = "contrarian"
)

var AllPersonas = map[Persona]struct{}{
	PersonaPundit:     {},
	PersonaAnalyst:    {},
	PersonaVeteran:    {},
	PersonaContrarian: {},
}

// ParsePersona defaults an empty value to pundit.
func ParsePersona(raw string) (Persona, error) {
	value := Persona(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return PersonaPundit, nil
	}
	if _, ok := AllPersonas[value]; !ok {
		return "", fmt.Errorf("unknown persona %q", raw)
	}
	return value, nil
}

// Recommendation is the full result of one recommend call.
type Recommendation struct {
	ID                string
	AccountID         int64
	Gameweek          int
	Persona           Persona
	Manager           ManagerSummary
	Transfer          Transfer
	Starting          []ScoredAsset
	Bench             []ScoredAsset
	Captain           ScoredAsset
	ViceCaptain       ScoredAsset
	UpcomingFixtures  []fixture.Fixture
	Narrative         string
	NarrativeFallback bool
	CreatedAt         time.Time
}

// Repository stores issued recommendations.
type Repository interface {
	Save(ctx context.Context, item Recommendation) error
	GetLatest(ctx context.Context, accountID int64, gameweek int) (Recommendation, bool, error)
}
