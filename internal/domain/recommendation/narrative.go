package recommendation

import "context"

const FallbackNarrative = "Unable to generate analysis - no models available."

// NarrativeRequest carries the facts a narrative is written from.
type NarrativeRequest struct {
	Persona          Persona
	Gameweek         int
	Manager          ManagerSummary
	Squad            []ScoredAsset
	CurrentCaptainID int64
	Transfer         Transfer
	Lineup           Lineup
}

// NarrativeGenerator turns recommendation facts into free text.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req NarrativeRequest) (string, error)
}
